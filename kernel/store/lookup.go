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

// Lookup walks path through nested Trees and returns the value found, or
// nil when any step is missing or not a Tree.
func Lookup(state Tree, path ...string) any {
	var current any = state
	for _, key := range path {
		node, ok := AsTree(current)
		if !ok {
			return nil
		}
		current, ok = node[key]
		if !ok {
			return nil
		}
	}
	return current
}

// Copy returns a deep copy of the map structure below state. Nested maps
// keep their type; other leaf values are shared.
func Copy(state Tree) Tree {
	if state == nil {
		return nil
	}
	out := make(Tree, len(state))
	for k, v := range state {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case Tree:
		return Copy(t)
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = copyValue(child)
		}
		return out
	}
	return v
}

// Plain converts v into generic maps so encoders and path queries see a
// uniform shape.
func Plain(v any) any {
	switch t := v.(type) {
	case Tree:
		if t == nil {
			return nil
		}
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = Plain(child)
		}
		return out
	case map[string]any:
		return Plain(Tree(t))
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = Plain(child)
		}
		return out
	case error:
		return t.Error()
	default:
		return v
	}
}

// AsTree reports whether v is a Tree node, accepting plain maps decoded from JSON.
func AsTree(v any) (Tree, bool) {
	switch t := v.(type) {
	case Tree:
		return t, true
	case map[string]any:
		return Tree(t), true
	}
	return nil, false
}
