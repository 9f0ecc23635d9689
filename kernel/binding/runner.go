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

package binding

import (
	"context"
	"reflect"

	"github.com/krishnagopinath/vuex-api-util/kernel/status"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/michaelquigley/pfxlog"
	"github.com/pkg/errors"
)

// Action performs the asynchronous work, typically an API call.
type Action func(ctx context.Context) (any, error)

// RunAction commits PENDING, runs fn and commits its outcome, blocking until
// fn returns. Exactly six commits are made whatever the outcome; fn's error
// is stored and returned unchanged. ctx is handed to fn only, the runner
// itself never gives up waiting.
func (b *Bindings) RunAction(ctx context.Context, c store.Committer, fn Action) (any, error) {
	if err := validate(c, fn); err != nil {
		return nil, err
	}
	b.begin(c)
	response, err := fn(ctx)
	return b.finish(c, response, err)
}

// StartAction is RunAction with fn running on its own goroutine. The
// PENDING commits have happened by the time it returns.
func (b *Bindings) StartAction(ctx context.Context, c store.Committer, fn Action) (*Future, error) {
	if err := validate(c, fn); err != nil {
		return nil, err
	}
	b.begin(c)

	f := newFuture()
	go func() {
		response, err := fn(ctx)
		f.settle(b.finish(c, response, err))
	}()
	return f, nil
}

// Run is RunAction for actions with a typed result.
func Run[T any](ctx context.Context, b *Bindings, c store.Committer, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if fn == nil {
		return zero, errors.WithStack(ErrActionNotCallable)
	}
	v, err := b.RunAction(ctx, c, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}

func validate(c store.Committer, fn Action) error {
	if fn == nil {
		return errors.WithStack(ErrActionNotCallable)
	}
	if c == nil {
		return errors.WithStack(ErrNilCommitter)
	}
	return nil
}

// begin clears the previous outcome. Status goes first so status watchers
// fire ahead of data and error watchers.
func (b *Bindings) begin(c store.Committer) {
	pfxlog.Logger().WithField("namespace", b.namespace).Debug("action started")

	c.Commit(b.mutationNames.SetRequestStatus, status.Pending)
	c.Commit(b.mutationNames.SetError, nil)
	c.Commit(b.mutationNames.SetData, nil)
}

func (b *Bindings) finish(c store.Committer, response any, err error) (any, error) {
	log := pfxlog.Logger().WithField("namespace", b.namespace)

	if err != nil {
		c.Commit(b.mutationNames.SetRequestStatus, status.Error)
		c.Commit(b.mutationNames.SetError, orNil(err))
		c.Commit(b.mutationNames.SetData, nil)

		log.WithError(err).Debug("action failed")
		return nil, err
	}

	c.Commit(b.mutationNames.SetRequestStatus, status.Success)
	c.Commit(b.mutationNames.SetError, nil)
	c.Commit(b.mutationNames.SetData, orNil(response))

	log.Debug("action succeeded")
	return response, nil
}

// orNil maps absent values, including typed nils, to an untyped nil.
// Zero values such as 0, "" and false are kept.
func orNil(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	}
	return v
}
