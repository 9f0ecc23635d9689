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

package loader

import (
	"fmt"

	"github.com/krishnagopinath/vuex-api-util/kernel/binding"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) add(field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks every module without stopping at the first problem.
func Validate(sim *SimulationYaml) *ValidationResult {
	result := &ValidationResult{}

	if sim.Concurrency < 0 {
		result.add("concurrency", "must not be negative, got %d", sim.Concurrency)
	}
	if len(sim.Modules) == 0 {
		result.add("modules", "at least one module is required")
	}

	seen := make(map[string]int)
	for i, m := range sim.Modules {
		field := fmt.Sprintf("modules[%d]", i)

		b, err := binding.NewFromValue(m.Namespace)
		if err != nil {
			result.add(field+".namespace", "%v", err)
		} else {
			// namespaces differing only in case derive the same mutation names
			key := b.MutationNames().SetFullState
			if first, dup := seen[key]; dup {
				result.add(field+".namespace", "'%s' collides with modules[%d] on mutation %s", b.Namespace(), first, key)
			} else {
				seen[key] = i
			}
		}

		switch m.Outcome {
		case OutcomeSuccess, OutcomeError:
		default:
			result.add(field+".outcome", "must be '%s' or '%s', got '%s'", OutcomeSuccess, OutcomeError, m.Outcome)
		}
		if m.DelayDuration < 0 {
			result.add(field+".delay", "must not be negative")
		}
	}

	return result
}

// ValidateSimulationBytes parses and validates a document in one step.
func ValidateSimulationBytes(data []byte) (*ValidationResult, error) {
	sim, err := ParseSimulation(data)
	if err != nil {
		return nil, err
	}
	return Validate(sim), nil
}
