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
	"context"

	"github.com/krishnagopinath/vuex-api-util/kernel/engine"
	"github.com/krishnagopinath/vuex-api-util/kernel/loader"
	"github.com/krishnagopinath/vuex-api-util/kernel/mcp"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(NewMCPServerCommand())
}

func NewMCPServerCommand() *cobra.Command {
	mcpCmd := &MCPServerCommand{}

	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Start an MCP server for inspecting generated bindings and store state",
		Long: `Start an MCP (Model Context Protocol) server on stdio.

The server provides tools for:
  - derive_names: Mutation and getter names for a namespace
  - query_state: JSONPath query against the store state
  - read_getter: Evaluate a registered getter
  - validate_simulation: Validate a simulation YAML file

And resources:
  - apibind://state: Current state tree`,
		RunE: mcpCmd.run,
	}

	cmd.Flags().StringVarP(&mcpCmd.ConfigPath, "config", "c", "", "simulation YAML to run before serving")
	cmd.Flags().StringVar(&mcpCmd.StatePath, "state", "", "JSON state snapshot to load before serving")

	return cmd
}

type MCPServerCommand struct {
	ConfigPath string
	StatePath  string
}

func (m *MCPServerCommand) run(cmd *cobra.Command, args []string) error {
	memStore, err := m.prepareStore(cmd)
	if err != nil {
		return err
	}

	logrus.Info("starting MCP server on stdio...")
	server := mcp.NewStoreMCPServer(memStore)
	return server.ServeStdio()
}

func (m *MCPServerCommand) prepareStore(cmd *cobra.Command) (*store.MemoryStore, error) {
	memStore := store.NewMemoryStore()

	if m.StatePath != "" {
		state, err := store.NewFileStore(m.StatePath).Load()
		if err != nil {
			return nil, err
		}
		memStore.ReplaceState(state)
		logrus.Infof("loaded state snapshot '%s'", m.StatePath)
	}

	if m.ConfigPath != "" {
		sim, err := loader.LoadSimulation(m.ConfigPath)
		if err != nil {
			return nil, err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := engine.NewSimulator(memStore).Simulate(ctx, sim)
		if result == nil {
			return nil, err
		}
		if err != nil {
			logrus.WithError(err).Warn("simulation did not complete")
		}
		logrus.Infof("simulation: %d succeeded, %d failed", result.Succeeded, result.Failed)
	}

	return memStore, nil
}
