/*
	(c) Copyright NetFoundry Inc. Inc.

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

	https://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package store

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/michaelquigley/pfxlog"
	"github.com/oliveagle/jsonpath"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pkg/errors"
)

// Change is a single property write observed during a commit.
type Change struct {
	Key   string
	Value any
}

// Event is delivered to subscribers after every commit.
type Event struct {
	Mutation string
	Payload  any
	Changes  []Change
}

// MemoryStore is an in-memory host store engine. Mutations run one at a
// time under a lock; every write they make through SetProperty is recorded
// and handed to subscribers once the commit completes.
type MemoryStore struct {
	mu         sync.Mutex
	state      Tree
	changes    []Change
	committing atomic.Bool

	modules   cmap.ConcurrentMap[string, Module]
	mutations cmap.ConcurrentMap[string, Mutation]
	getters   cmap.ConcurrentMap[string, Getter]

	subMu       sync.RWMutex
	subscribers map[int]func(Event)
	nextSub     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state:       make(Tree),
		modules:     cmap.New[Module](),
		mutations:   cmap.New[Mutation](),
		getters:     cmap.New[Getter](),
		subscribers: make(map[int]func(Event)),
	}
}

// RegisterModule merges the module's initial state into the root tree and
// makes its mutations and getters addressable by name.
func (s *MemoryStore) RegisterModule(m Module) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns := m.Namespace()
	if s.modules.Has(ns) {
		return errors.Errorf("module [%s] already registered", ns)
	}
	mutations := m.Mutations()
	for name := range mutations {
		if s.mutations.Has(name) {
			return errors.Errorf("mutation [%s] of module [%s] already registered", name, ns)
		}
	}
	getters := m.Getters()
	for name := range getters {
		if s.getters.Has(name) {
			return errors.Errorf("getter [%s] of module [%s] already registered", name, ns)
		}
	}

	for k, v := range m.State() {
		s.state[k] = v
	}
	for name, handler := range mutations {
		s.mutations.Set(name, handler)
	}
	for name, getter := range getters {
		s.getters.Set(name, getter)
	}
	s.modules.Set(ns, m)

	pfxlog.Logger().WithField("module", ns).Debugf("registered %d mutation(s), %d getter(s)", len(mutations), len(getters))
	return nil
}

// Namespaces lists registered module namespaces in sorted order.
func (s *MemoryStore) Namespaces() []string {
	keys := s.modules.Keys()
	sort.Strings(keys)
	return keys
}

// Commit runs the named mutation. Unknown names are logged and ignored.
func (s *MemoryStore) Commit(name string, payload any) {
	handler, ok := s.mutations.Get(name)
	if !ok {
		pfxlog.Logger().WithField("mutation", name).Error("unknown mutation type")
		return
	}

	changes := s.apply(handler, payload)
	pfxlog.Logger().WithField("mutation", name).Debugf("committed with %d change(s)", len(changes))

	s.notify(Event{Mutation: name, Payload: payload, Changes: changes})
}

func (s *MemoryStore) apply(handler Mutation, payload any) []Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committing.Store(true)
	defer s.committing.Store(false)

	s.changes = nil
	handler(s.state, payload)
	changes := s.changes
	s.changes = nil
	return changes
}

// SetProperty writes key on target and records the change. It must only be
// called by mutation handlers while a commit is in progress; writes outside
// a commit are applied but reported.
func (s *MemoryStore) SetProperty(target Tree, key string, value any) {
	if target == nil {
		pfxlog.Logger().WithField("key", key).Warn("cannot set property on a nil target")
		return
	}
	if !s.committing.Load() {
		pfxlog.Logger().WithField("key", key).Warn("state mutated outside of a commit")
		target[key] = value
		return
	}
	target[key] = value
	s.changes = append(s.changes, Change{Key: key, Value: value})
}

// Getter evaluates the named getter against the current state.
func (s *MemoryStore) Getter(name string) (any, error) {
	getter, ok := s.getters.Get(name)
	if !ok {
		return nil, errors.Errorf("unknown getter [%s]", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := getter(s.state)
	if t, ok := v.(Tree); ok {
		return Copy(t), nil
	}
	return v, nil
}

// GetterNames lists registered getter names in sorted order.
func (s *MemoryStore) GetterNames() []string {
	keys := s.getters.Keys()
	sort.Strings(keys)
	return keys
}

// State returns a deep copy of the state tree.
func (s *MemoryStore) State() Tree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Copy(s.state)
}

// ReplaceState swaps the whole state tree, e.g. when hydrating from a snapshot.
func (s *MemoryStore) ReplaceState(state Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Copy(state)
	if s.state == nil {
		s.state = make(Tree)
	}
}

// Query evaluates a JSONPath expression such as "$.resourceApi.data" against
// a snapshot of the state.
func (s *MemoryStore) Query(path string) (any, error) {
	result, err := jsonpath.JsonPathLookup(Plain(s.State()), path)
	if err != nil {
		return nil, errors.Wrapf(err, "query [%s] failed", path)
	}
	return result, nil
}

// Subscribe registers fn for every subsequent commit and returns a function
// that removes it.
func (s *MemoryStore) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *MemoryStore) notify(ev Event) {
	s.subMu.RLock()
	subscribers := make([]func(Event), 0, len(s.subscribers))
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		subscribers = append(subscribers, s.subscribers[id])
	}
	s.subMu.RUnlock()

	for _, fn := range subscribers {
		fn(ev)
	}
}
