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

// Package binding generates the state, mutations, getters and action runner
// that wire one asynchronous request's lifecycle into a store module.
package binding

import (
	"github.com/krishnagopinath/vuex-api-util/kernel/naming"
	"github.com/krishnagopinath/vuex-api-util/kernel/status"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/michaelquigley/pfxlog"
	"github.com/pkg/errors"
)

const (
	keyRequestStatus = "requestStatus"
	keyData          = "data"
	keyError         = "error"
)

// Bindings holds the derived names for one namespace and builds its store artifacts.
type Bindings struct {
	namespace     string
	mutationNames naming.MutationNames
	getterNames   naming.GetterNames
	setter        store.Setter
}

var _ store.Module = (*Bindings)(nil)

type Option func(*Bindings)

// WithSetter routes every mutation write through s, normally the host store.
func WithSetter(s store.Setter) Option {
	return func(b *Bindings) {
		if s != nil {
			b.setter = s
		}
	}
}

// New validates namespace and derives all names up front.
func New(namespace string, opts ...Option) (*Bindings, error) {
	if namespace == "" {
		return nil, errors.WithStack(ErrNamespaceEmpty)
	}

	b := &Bindings{
		namespace:     namespace,
		mutationNames: naming.Mutations(namespace),
		getterNames:   naming.Getters(namespace),
		setter:        store.DirectSetter{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewFromValue is New for namespaces that arrive untyped, e.g. from a
// decoded config file.
func NewFromValue(v any, opts ...Option) (*Bindings, error) {
	namespace, ok := v.(string)
	if !ok {
		return nil, errors.WithStack(ErrNamespaceNotString)
	}
	return New(namespace, opts...)
}

func (b *Bindings) Namespace() string {
	return b.namespace
}

func (b *Bindings) MutationNames() naming.MutationNames {
	return b.mutationNames
}

func (b *Bindings) GetterNames() naming.GetterNames {
	return b.getterNames
}

// State returns a new initial tree on every call.
func (b *Bindings) State() store.Tree {
	return store.Tree{
		b.namespace: Slice{RequestStatus: status.NotStarted}.Tree(),
	}
}

func (b *Bindings) Mutations() map[string]store.Mutation {
	return map[string]store.Mutation{
		b.mutationNames.SetFullState: func(state store.Tree, payload any) {
			b.setter.SetProperty(state, b.namespace, slicePayload(payload))
		},
		b.mutationNames.SetRequestStatus: func(state store.Tree, payload any) {
			b.setField(state, keyRequestStatus, payload)
		},
		b.mutationNames.SetError: func(state store.Tree, payload any) {
			b.setField(state, keyError, payload)
		},
		b.mutationNames.SetData: func(state store.Tree, payload any) {
			b.setField(state, keyData, payload)
		},
	}
}

func (b *Bindings) setField(state store.Tree, key string, payload any) {
	slice, ok := store.AsTree(state[b.namespace])
	if !ok || slice == nil {
		pfxlog.Logger().WithField("namespace", b.namespace).Warnf("cannot set '%s' on a missing slice", key)
		return
	}
	b.setter.SetProperty(slice, key, payload)
}

func (b *Bindings) Getters() map[string]store.Getter {
	ns := b.namespace
	is := func(want status.Status) store.Getter {
		return func(state store.Tree) any {
			return statusOf(store.Lookup(state, ns, keyRequestStatus)) == want
		}
	}
	return map[string]store.Getter{
		b.getterNames.FullState:    func(state store.Tree) any { return store.Lookup(state, ns) },
		b.getterNames.IsNotStarted: is(status.NotStarted),
		b.getterNames.IsPending:    is(status.Pending),
		b.getterNames.IsSuccess:    is(status.Success),
		b.getterNames.IsError:      is(status.Error),
		b.getterNames.RequestStatus: func(state store.Tree) any {
			return store.Lookup(state, ns, keyRequestStatus)
		},
		b.getterNames.Data:  func(state store.Tree) any { return store.Lookup(state, ns, keyData) },
		b.getterNames.Error: func(state store.Tree) any { return store.Lookup(state, ns, keyError) },
	}
}

// Slice reads the namespace slice out of state.
func (b *Bindings) Slice(state store.Tree) (Slice, bool) {
	return SliceOf(store.Lookup(state, b.namespace))
}

// statusOf accepts both typed statuses and the plain strings found in
// decoded snapshots.
func statusOf(v any) status.Status {
	switch t := v.(type) {
	case status.Status:
		return t
	case string:
		return status.Status(t)
	}
	return ""
}
