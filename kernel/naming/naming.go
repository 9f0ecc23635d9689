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

// Package naming derives the mutation and getter identifiers for a store
// namespace. Every function is pure and total.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MutationNames are the four mutation identifiers for one namespace.
type MutationNames struct {
	SetFullState     string
	SetRequestStatus string
	SetData          string
	SetError         string
}

// All returns the names in registration order.
func (m MutationNames) All() []string {
	return []string{m.SetFullState, m.SetRequestStatus, m.SetError, m.SetData}
}

// GetterNames are the eight getter identifiers for one namespace.
type GetterNames struct {
	FullState     string
	IsNotStarted  string
	IsPending     string
	IsSuccess     string
	IsError       string
	RequestStatus string
	Data          string
	Error         string
}

// All returns the names in registration order.
func (g GetterNames) All() []string {
	return []string{
		g.FullState,
		g.IsNotStarted,
		g.IsPending,
		g.IsSuccess,
		g.IsError,
		g.RequestStatus,
		g.Data,
		g.Error,
	}
}

// Mutations derives mutation names; "resourceApi" yields SET_RESOURCE_API,
// SET_RESOURCE_API_REQUEST_STATUS, SET_RESOURCE_API_DATA and SET_RESOURCE_API_ERROR.
func Mutations(namespace string) MutationNames {
	mid := strings.ToUpper(ToSnakeCase(namespace))
	return MutationNames{
		SetFullState:     "SET_" + mid,
		SetRequestStatus: "SET_" + mid + "_REQUEST_STATUS",
		SetData:          "SET_" + mid + "_DATA",
		SetError:         "SET_" + mid + "_ERROR",
	}
}

// Getters derives getter names; "resourceApi" yields resourceApi,
// isResourceApiPending, resourceApiData and so on.
func Getters(namespace string) GetterNames {
	mid := UpperFirst(namespace)
	return GetterNames{
		FullState:     namespace,
		IsNotStarted:  "is" + mid + "NotStarted",
		IsPending:     "is" + mid + "Pending",
		IsSuccess:     "is" + mid + "Success",
		IsError:       "is" + mid + "Error",
		RequestStatus: namespace + "Status",
		Data:          namespace + "Data",
		Error:         namespace + "Error",
	}
}

// UpperFirst upper-cases the first character and leaves the rest unchanged.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// UpperFirstValue applies UpperFirst to strings and returns anything else unchanged.
func UpperFirstValue(v any) any {
	if s, ok := v.(string); ok {
		return UpperFirst(s)
	}
	return v
}

// SnakeCaseValue applies ToSnakeCase to strings and returns anything else unchanged.
func SnakeCaseValue(v any) any {
	if s, ok := v.(string); ok {
		return ToSnakeCase(s)
	}
	return v
}

// ToSnakeCase splits s into words and joins them lower-cased with '_'.
//
// A word is, tried in this order at each position: a run of two or more
// capitals that ends before a Capitalized word or at a word boundary
// ("HTTPServer" -> "HTTP", "Server"); an optional capital followed by lower
// case letters and trailing digits; a lone capital; a run of digits.
// Anything else separates words and is dropped. A string without words
// yields "".
func ToSnakeCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

func splitWords(s string) []string {
	var words []string
	for i := 0; i < len(s); {
		n := matchWord(s, i)
		if n == 0 {
			i++
			continue
		}
		words = append(words, s[i:i+n])
		i += n
	}
	return words
}

// matchWord returns the length of the word starting at i, or 0.
func matchWord(s string, i int) int {
	if n := matchAcronym(s, i); n > 0 {
		return n
	}
	if n := matchCapitalized(s, i); n > 0 {
		return n
	}
	if isUpper(s[i]) {
		return 1
	}
	return run(s, i, isDigit)
}

func matchAcronym(s string, i int) int {
	n := run(s, i, isUpper)
	if n < 2 {
		return 0
	}
	end := i + n
	if end == len(s) || !isWord(s[end]) {
		return n
	}
	// giving back the last capital only helps when it starts a Capitalized word
	if n > 2 && isLower(s[end]) {
		return n - 1
	}
	return 0
}

func matchCapitalized(s string, i int) int {
	j := i
	if isUpper(s[j]) {
		j++
	}
	lower := run(s, j, isLower)
	if lower == 0 {
		return 0
	}
	j += lower
	j += run(s, j, isDigit)
	return j - i
}

func run(s string, i int, class func(byte) bool) int {
	j := i
	for j < len(s) && class(s[j]) {
		j++
	}
	return j - i
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWord(c byte) bool {
	return isUpper(c) || isLower(c) || isDigit(c) || c == '_'
}
