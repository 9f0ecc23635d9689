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
	"github.com/krishnagopinath/vuex-api-util/kernel/status"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
)

// Slice is the typed form of the record kept under a namespace.
type Slice struct {
	RequestStatus status.Status
	Data          any
	Error         any
}

func (s Slice) Tree() store.Tree {
	return store.Tree{
		keyRequestStatus: s.RequestStatus,
		keyData:          s.Data,
		keyError:         s.Error,
	}
}

// SliceOf converts a slice node back into a Slice. It reports false when v
// is not a tree.
func SliceOf(v any) (Slice, bool) {
	t, ok := store.AsTree(v)
	if !ok || t == nil {
		return Slice{}, false
	}
	return Slice{
		RequestStatus: statusOf(t[keyRequestStatus]),
		Data:          t[keyData],
		Error:         t[keyError],
	}, true
}

func slicePayload(payload any) any {
	switch p := payload.(type) {
	case Slice:
		return p.Tree()
	case *Slice:
		if p == nil {
			return nil
		}
		return p.Tree()
	}
	return payload
}
