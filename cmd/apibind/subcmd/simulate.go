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

package subcmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/krishnagopinath/vuex-api-util/kernel/engine"
	"github.com/krishnagopinath/vuex-api-util/kernel/loader"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(NewSimulateCommand())
}

func NewSimulateCommand() *cobra.Command {
	simulateCmd := &SimulateCommand{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run canned actions from a YAML file through generated bindings",
		RunE:  simulateCmd.simulate,
	}

	cmd.Flags().StringVarP(&simulateCmd.ConfigPath, "config", "c", "", "path to simulation YAML file")
	cmd.Flags().BoolVar(&simulateCmd.DryRun, "dry-run", false, "validate the simulation without running it")
	cmd.Flags().StringArrayVarP(&simulateCmd.Queries, "query", "q", nil, "JSONPath to print from the final state (repeatable)")
	cmd.Flags().StringVarP(&simulateCmd.OutPath, "out", "o", "", "write the final state as JSON to this path")
	cmd.MarkFlagRequired("config")

	return cmd
}

type SimulateCommand struct {
	ConfigPath string
	DryRun     bool
	Queries    []string
	OutPath    string
}

func (s *SimulateCommand) simulate(cmd *cobra.Command, args []string) error {
	sim, err := loader.LoadSimulation(s.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load simulation: %w", err)
	}

	if s.DryRun {
		result := loader.Validate(sim)
		if !result.IsValid() {
			for _, e := range result.Errors {
				logrus.Errorf("dry-run: %s", e)
			}
			return fmt.Errorf("simulation has %d error(s)", len(result.Errors))
		}
		logrus.Infof("dry-run: %d module(s), concurrency %d", len(sim.Modules), sim.Concurrency)
		for _, m := range sim.Modules {
			logrus.Infof("  namespace '%v': %s after %v", m.Namespace, m.Outcome, m.DelayDuration)
		}
		return nil
	}

	memStore := store.NewMemoryStore()
	simulator := engine.NewSimulator(memStore)

	result, runErr := simulator.Simulate(cmd.Context(), sim)
	if result == nil {
		return fmt.Errorf("simulation failed: %w", runErr)
	}

	s.render(cmd, result)
	logrus.Infof("simulate: %d succeeded, %d failed", result.Succeeded, result.Failed)

	for _, q := range s.Queries {
		v, err := memStore.Query(q)
		if err != nil {
			return err
		}
		data, err := json.Marshal(store.Plain(v))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", q, data)
	}

	if s.OutPath != "" {
		if err := store.NewFileStore(s.OutPath).Save(memStore.State()); err != nil {
			return err
		}
		logrus.Infof("simulate: state written to '%s'", s.OutPath)
	}

	if runErr != nil {
		return fmt.Errorf("simulation aborted: %w", runErr)
	}
	return nil
}

func (s *SimulateCommand) render(cmd *cobra.Command, result *engine.Result) {
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Namespace", "Status", "Result", "Elapsed"})
	for _, o := range result.Outcomes {
		var detail string
		if o.Err != nil {
			detail = o.Err.Error()
		} else {
			data, _ := json.Marshal(store.Plain(o.Data))
			detail = string(data)
		}
		t.AppendRow(table.Row{o.Namespace, o.Status, truncate(detail, 60), o.Elapsed.Round(time.Microsecond)})
	}
	t.Render()
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
