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

package status

import "fmt"

// Status is the lifecycle state of a single asynchronous request.
type Status string

const (
	NotStarted Status = "not_started"
	Pending    Status = "pending"
	Success    Status = "success"
	Error      Status = "error"
)

// All lists every status in lifecycle order.
var All = []Status{NotStarted, Pending, Success, Error}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case NotStarted, Pending, Success, Error:
		return true
	}
	return false
}

// Parse converts the wire value of a status back into a Status.
func Parse(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown request status '%s'", v)
	}
	return s, nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
