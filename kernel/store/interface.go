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

// Tree is a node of the host store's state tree. Namespace slices are Trees
// nested under the root.
type Tree map[string]any

// Setter is the host's "set property and notify" primitive. Mutation
// handlers write through it so the host can observe every change.
type Setter interface {
	SetProperty(target Tree, key string, value any)
}

// Committer dispatches a named mutation with a payload.
type Committer interface {
	Commit(name string, payload any)
}

// CommitFunc adapts a plain function to Committer.
type CommitFunc func(name string, payload any)

func (f CommitFunc) Commit(name string, payload any) {
	f(name, payload)
}

// Mutation applies a single change to the state tree.
type Mutation func(state Tree, payload any)

// Getter derives a value from the state tree.
type Getter func(state Tree) any

// Module is the registration surface a store engine needs from a binding.
type Module interface {
	Namespace() string
	State() Tree
	Mutations() map[string]Mutation
	Getters() map[string]Getter
}

// DirectSetter assigns without notifying anyone. It is the setter of last
// resort when no host store is wired in.
type DirectSetter struct{}

func (DirectSetter) SetProperty(target Tree, key string, value any) {
	if target == nil {
		return
	}
	target[key] = value
}
