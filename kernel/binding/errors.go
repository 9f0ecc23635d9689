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

import "github.com/pkg/errors"

// ErrInvalidArgument matches every argument validation failure of this package.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrNamespaceNotString = &ArgumentError{Param: "namespace", Message: "`namespace` parameter must be a string"}
	ErrNamespaceEmpty     = &ArgumentError{Param: "namespace", Message: "`namespace` parameter must be valid"}
	ErrActionNotCallable  = &ArgumentError{Param: "asyncFn", Message: "invalid `asyncFn`; it must be a function"}
	ErrNilCommitter       = &ArgumentError{Param: "context", Message: "invalid `context`; it must be able to commit"}
)

// ArgumentError describes a malformed argument. It is always returned
// synchronously, before any state is touched.
type ArgumentError struct {
	Param   string
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
