package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range All {
		parsed, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := Parse("done")
	assert.Error(t, err)
}

func TestWireValues(t *testing.T) {
	assert.Equal(t, "not_started", string(NotStarted))
	assert.Equal(t, "pending", string(Pending))
	assert.Equal(t, "success", string(Success))
	assert.Equal(t, "error", string(Error))
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := json.Marshal(map[string]Status{"requestStatus": Pending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"requestStatus":"pending"}`, string(out))

	var in struct {
		RequestStatus Status `json:"requestStatus"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"requestStatus":"success"}`), &in))
	assert.Equal(t, Success, in.RequestStatus)

	assert.Error(t, json.Unmarshal([]byte(`{"requestStatus":"bogus"}`), &in))
}
