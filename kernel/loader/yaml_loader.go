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
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// SimulationYaml describes a set of store modules and the outcome each
// module's action should produce.
type SimulationYaml struct {
	Concurrency int          `yaml:"concurrency"`
	FailFast    bool         `yaml:"fail_fast"`
	Modules     []ModuleYaml `yaml:"modules"`
}

type ModuleYaml struct {
	// Namespace stays untyped so malformed values surface as namespace errors.
	Namespace interface{} `yaml:"namespace"`
	Outcome   string      `yaml:"outcome"`
	Data      interface{} `yaml:"data"`
	Error     string      `yaml:"error"`
	Delay     string      `yaml:"delay"`

	DelayDuration time.Duration `yaml:"-"`
}

func LoadSimulation(path string) (*SimulationYaml, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSimulation(data)
}

// ParseSimulation decodes and normalizes a simulation document. Delays are
// parsed and outcomes default to success.
func ParseSimulation(data []byte) (*SimulationYaml, error) {
	var sim SimulationYaml
	if err := yaml.Unmarshal(data, &sim); err != nil {
		return nil, errors.Wrap(err, "failed to parse simulation")
	}

	for i := range sim.Modules {
		m := &sim.Modules[i]
		if m.Outcome == "" {
			m.Outcome = OutcomeSuccess
		}
		if m.Delay != "" {
			d, err := time.ParseDuration(m.Delay)
			if err != nil {
				return nil, errors.Wrapf(err, "module #%d: invalid delay", i)
			}
			m.DelayDuration = d
		}
		m.Data = normalize(m.Data)
	}

	return &sim, nil
}

// normalize turns yaml.v2's map[interface{}]interface{} nodes into
// map[string]any so data can be stored, queried and encoded as JSON.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []interface{}:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = normalize(child)
		}
		return out
	}
	return v
}
