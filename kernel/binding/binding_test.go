package binding

import (
	"errors"
	"testing"

	"github.com/krishnagopinath/vuex-api-util/kernel/status"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialState() store.Tree {
	return store.Tree{
		"resourceApi": store.Tree{
			"requestStatus": status.NotStarted,
			"data":          nil,
			"error":         nil,
		},
	}
}

func newResourceApi(t *testing.T) *Bindings {
	t.Helper()
	b, err := New("resourceApi")
	require.NoError(t, err)
	return b
}

func TestNewFromValue_NotString(t *testing.T) {
	for _, input := range []any{nil, 12, map[string]int{"a": 10}, []string{"resourceApi"}} {
		_, err := NewFromValue(input)
		require.Error(t, err, "input %v", input)
		assert.ErrorIs(t, err, ErrNamespaceNotString)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, "`namespace` parameter must be a string", err.Error())
	}
}

func TestNew_Empty(t *testing.T) {
	for _, create := range []func() (*Bindings, error){
		func() (*Bindings, error) { return New("") },
		func() (*Bindings, error) { return NewFromValue("") },
	} {
		_, err := create()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNamespaceEmpty)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.NotErrorIs(t, err, ErrNamespaceNotString)
	}
}

func TestNew_Artifacts(t *testing.T) {
	b, err := NewFromValue("resourceApi")
	require.NoError(t, err)

	assert.Equal(t, "resourceApi", b.Namespace())
	assert.Len(t, b.State(), 1)
	assert.Len(t, b.Mutations(), 4)
	assert.Len(t, b.Getters(), 8)
	assert.Equal(t, "SET_RESOURCE_API_DATA", b.MutationNames().SetData)
	assert.Equal(t, "isResourceApiPending", b.GetterNames().IsPending)
}

func TestState(t *testing.T) {
	b := newResourceApi(t)

	first := b.State()
	second := b.State()
	assert.Equal(t, initialState(), first)
	assert.Equal(t, first, second)

	first["resourceApi"].(store.Tree)["data"] = "changed"
	assert.Nil(t, second["resourceApi"].(store.Tree)["data"])
	assert.Nil(t, b.State()["resourceApi"].(store.Tree)["data"])
}

func TestMutations_Names(t *testing.T) {
	mutations := newResourceApi(t).Mutations()

	for _, name := range []string{
		"SET_RESOURCE_API",
		"SET_RESOURCE_API_REQUEST_STATUS",
		"SET_RESOURCE_API_ERROR",
		"SET_RESOURCE_API_DATA",
	} {
		assert.Contains(t, mutations, name)
	}
}

func TestMutations_SetFullState(t *testing.T) {
	mutations := newResourceApi(t).Mutations()
	state := initialState()

	next := store.Tree{"requestStatus": status.Pending, "data": nil, "error": nil}
	mutations["SET_RESOURCE_API"](state, next)
	assert.Equal(t, next, state["resourceApi"])

	mutations["SET_RESOURCE_API"](state, Slice{RequestStatus: status.Success, Data: 1})
	assert.Equal(t, store.Tree{"requestStatus": status.Success, "data": 1, "error": nil}, state["resourceApi"])
}

func TestMutations_SetRequestStatus(t *testing.T) {
	mutations := newResourceApi(t).Mutations()
	state := initialState()

	mutations["SET_RESOURCE_API_REQUEST_STATUS"](state, status.Pending)
	assert.Equal(t, store.Tree{"requestStatus": status.Pending, "data": nil, "error": nil}, state["resourceApi"])
}

func TestMutations_SetError(t *testing.T) {
	mutations := newResourceApi(t).Mutations()
	state := initialState()
	state["resourceApi"].(store.Tree)["requestStatus"] = status.Error

	boom := errors.New("testing error")
	mutations["SET_RESOURCE_API_ERROR"](state, boom)
	assert.Equal(t, store.Tree{"requestStatus": status.Error, "data": nil, "error": boom}, state["resourceApi"])
}

func TestMutations_SetData(t *testing.T) {
	mutations := newResourceApi(t).Mutations()
	state := initialState()
	state["resourceApi"].(store.Tree)["requestStatus"] = status.Success

	data := map[string]any{"a": 2}
	mutations["SET_RESOURCE_API_DATA"](state, data)
	assert.Equal(t, store.Tree{"requestStatus": status.Success, "data": data, "error": nil}, state["resourceApi"])
}

func TestMutations_MissingSlice(t *testing.T) {
	mutations := newResourceApi(t).Mutations()
	state := store.Tree{}

	assert.NotPanics(t, func() {
		mutations["SET_RESOURCE_API_DATA"](state, 1)
	})
	assert.Empty(t, state)
}

type recordingSetter struct {
	keys []string
}

func (s *recordingSetter) SetProperty(target store.Tree, key string, value any) {
	s.keys = append(s.keys, key)
	target[key] = value
}

func TestMutations_UseSetter(t *testing.T) {
	setter := &recordingSetter{}
	b, err := New("resourceApi", WithSetter(setter))
	require.NoError(t, err)

	state := b.State()
	mutations := b.Mutations()
	mutations["SET_RESOURCE_API_REQUEST_STATUS"](state, status.Pending)
	mutations["SET_RESOURCE_API_ERROR"](state, nil)
	mutations["SET_RESOURCE_API_DATA"](state, nil)
	mutations["SET_RESOURCE_API"](state, Slice{RequestStatus: status.NotStarted}.Tree())

	assert.Equal(t, []string{"requestStatus", "error", "data", "resourceApi"}, setter.keys)
}

func TestGetters_Names(t *testing.T) {
	getters := newResourceApi(t).Getters()

	for _, name := range []string{
		"resourceApi",
		"isResourceApiNotStarted",
		"isResourceApiPending",
		"isResourceApiSuccess",
		"isResourceApiError",
		"resourceApiStatus",
		"resourceApiData",
		"resourceApiError",
	} {
		assert.Contains(t, getters, name)
	}
}

func TestGetters_Values(t *testing.T) {
	getters := newResourceApi(t).Getters()

	assert.Equal(t, initialState()["resourceApi"], getters["resourceApi"](initialState()))
	assert.Equal(t, true, getters["isResourceApiNotStarted"](initialState()))
	assert.Equal(t, false, getters["isResourceApiPending"](initialState()))
	assert.Equal(t, status.NotStarted, getters["resourceApiStatus"](initialState()))

	for _, tc := range []struct {
		status status.Status
		getter string
	}{
		{status.Pending, "isResourceApiPending"},
		{status.Success, "isResourceApiSuccess"},
		{status.Error, "isResourceApiError"},
	} {
		state := initialState()
		state["resourceApi"].(store.Tree)["requestStatus"] = tc.status
		assert.Equal(t, true, getters[tc.getter](state), tc.getter)
		assert.Equal(t, false, getters["isResourceApiNotStarted"](state), tc.getter)
	}

	state := initialState()
	state["resourceApi"].(store.Tree)["requestStatus"] = "done"
	state["resourceApi"].(store.Tree)["data"] = map[string]any{"a": 2}
	assert.Equal(t, map[string]any{"a": 2}, getters["resourceApiData"](state))

	boom := errors.New("testing error")
	state["resourceApi"].(store.Tree)["error"] = boom
	assert.Equal(t, boom, getters["resourceApiError"](state))
}

func TestGetters_PlainStringStatus(t *testing.T) {
	getters := newResourceApi(t).Getters()

	state := store.Tree{"resourceApi": map[string]any{"requestStatus": "pending"}}
	assert.Equal(t, true, getters["isResourceApiPending"](state))
}

func TestGetters_MissingSlice(t *testing.T) {
	getters := newResourceApi(t).Getters()
	state := store.Tree{}

	assert.NotPanics(t, func() {
		for _, getter := range getters {
			getter(state)
			getter(nil)
		}
	})
	assert.Nil(t, getters["resourceApiData"](state))
	assert.Equal(t, false, getters["isResourceApiNotStarted"](state))
}

func TestSliceOf(t *testing.T) {
	b := newResourceApi(t)

	slice, ok := b.Slice(initialState())
	require.True(t, ok)
	assert.Equal(t, Slice{RequestStatus: status.NotStarted}, slice)

	_, ok = b.Slice(store.Tree{})
	assert.False(t, ok)
}
