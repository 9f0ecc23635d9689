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

import "context"

// Future is the pending outcome of StartAction.
type Future struct {
	done  chan struct{}
	value any
	err   error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) settle(value any, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Done is closed once the action has settled and its commits are made.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result blocks until the action settles.
func (f *Future) Result() (any, error) {
	<-f.done
	return f.value, f.err
}

// Wait is Result bounded by ctx. Giving up does not cancel the action; its
// commits still happen when it settles.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
