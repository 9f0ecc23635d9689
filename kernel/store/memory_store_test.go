package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterModule is a minimal Module wired to a Setter.
type counterModule struct {
	ns     string
	setter Setter
}

func (m *counterModule) Namespace() string { return m.ns }

func (m *counterModule) State() Tree {
	return Tree{m.ns: Tree{"count": 0}}
}

func (m *counterModule) Mutations() map[string]Mutation {
	return map[string]Mutation{
		"SET_" + m.ns: func(state Tree, payload any) {
			slice, _ := AsTree(state[m.ns])
			m.setter.SetProperty(slice, "count", payload)
		},
	}
}

func (m *counterModule) Getters() map[string]Getter {
	return map[string]Getter{
		m.ns:           func(state Tree) any { return Lookup(state, m.ns) },
		m.ns + "Count": func(state Tree) any { return Lookup(state, m.ns, "count") },
	}
}

func newCounterStore(t *testing.T, namespaces ...string) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	for _, ns := range namespaces {
		require.NoError(t, s.RegisterModule(&counterModule{ns: ns, setter: s}))
	}
	return s
}

func TestMemoryStore_RegisterModule(t *testing.T) {
	s := newCounterStore(t, "a", "b")

	assert.Equal(t, []string{"a", "b"}, s.Namespaces())
	assert.Equal(t, []string{"a", "aCount", "b", "bCount"}, s.GetterNames())
	assert.Equal(t, Tree{"a": Tree{"count": 0}, "b": Tree{"count": 0}}, s.State())
}

func TestMemoryStore_RegisterModule_Duplicate(t *testing.T) {
	s := newCounterStore(t, "a")

	err := s.RegisterModule(&counterModule{ns: "a", setter: s})
	assert.Error(t, err)
}

func TestMemoryStore_Commit(t *testing.T) {
	s := newCounterStore(t, "a")

	var events []Event
	cancel := s.Subscribe(func(ev Event) { events = append(events, ev) })

	s.Commit("SET_a", 5)

	v, err := s.Getter("aCount")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.Len(t, events, 1)
	assert.Equal(t, "SET_a", events[0].Mutation)
	assert.Equal(t, 5, events[0].Payload)
	assert.Equal(t, []Change{{Key: "count", Value: 5}}, events[0].Changes)

	cancel()
	s.Commit("SET_a", 6)
	assert.Len(t, events, 1)
}

func TestMemoryStore_Commit_UnknownMutation(t *testing.T) {
	s := newCounterStore(t, "a")

	assert.NotPanics(t, func() { s.Commit("SET_NOTHING", 1) })
	assert.Equal(t, Tree{"a": Tree{"count": 0}}, s.State())
}

func TestMemoryStore_Commit_Concurrent(t *testing.T) {
	s := newCounterStore(t, "a")

	var mu sync.Mutex
	commits := 0
	s.Subscribe(func(Event) {
		mu.Lock()
		commits++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Commit("SET_a", i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, commits)
}

func TestMemoryStore_GetterUnknown(t *testing.T) {
	s := newCounterStore(t, "a")

	_, err := s.Getter("nope")
	assert.Error(t, err)
}

func TestMemoryStore_StateIsSnapshot(t *testing.T) {
	s := newCounterStore(t, "a")

	snapshot := s.State()
	snapshot["a"].(Tree)["count"] = 99

	v, err := s.Getter("aCount")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	full, err := s.Getter("a")
	require.NoError(t, err)
	full.(Tree)["count"] = 42

	v, _ = s.Getter("aCount")
	assert.Equal(t, 0, v)
}

func TestMemoryStore_ReplaceState(t *testing.T) {
	s := newCounterStore(t, "a")

	s.ReplaceState(Tree{"a": Tree{"count": 7}})
	v, err := s.Getter("aCount")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	s.ReplaceState(nil)
	assert.Equal(t, Tree{}, s.State())
}

func TestMemoryStore_Query(t *testing.T) {
	s := newCounterStore(t, "a")
	s.Commit("SET_a", 3)

	v, err := s.Query("$.a.count")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = s.Query("$.missing.count")
	assert.Error(t, err)
}

func TestMemoryStore_SetPropertyOutsideCommit(t *testing.T) {
	s := NewMemoryStore()
	target := Tree{}

	s.SetProperty(target, "k", "v")
	assert.Equal(t, "v", target["k"])

	assert.NotPanics(t, func() { s.SetProperty(nil, "k", "v") })
}
