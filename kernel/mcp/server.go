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

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/krishnagopinath/vuex-api-util/kernel/binding"
	"github.com/krishnagopinath/vuex-api-util/kernel/loader"
	"github.com/krishnagopinath/vuex-api-util/kernel/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const StateURI = "apibind://state"

// StoreMCPServer exposes name derivation and read access to a store over MCP.
type StoreMCPServer struct {
	server *server.MCPServer
	store  *store.MemoryStore
}

func NewStoreMCPServer(s *store.MemoryStore) *StoreMCPServer {
	srv := server.NewMCPServer(
		"apibind store inspector",
		"v1.0.0",
		server.WithResourceCapabilities(true, true),
		server.WithToolCapabilities(true),
	)

	ss := &StoreMCPServer{
		server: srv,
		store:  s,
	}

	ss.registerTools()
	ss.registerResources()

	return ss
}

func (ss *StoreMCPServer) ServeStdio() error {
	return server.ServeStdio(ss.server)
}

func (ss *StoreMCPServer) registerTools() {
	ss.server.AddTool(mcp.NewTool("derive_names",
		mcp.WithDescription("Derive the mutation and getter names generated for a namespace"),
		mcp.WithString("namespace",
			mcp.Description("Namespace of the store slice, e.g. resourceApi"),
			mcp.Required(),
		),
	), ss.deriveNamesHandler)

	ss.server.AddTool(mcp.NewTool("query_state",
		mcp.WithDescription("Evaluate a JSONPath expression against the store state"),
		mcp.WithString("path",
			mcp.Description("JSONPath expression, e.g. $.resourceApi.data"),
			mcp.Required(),
		),
	), ss.queryStateHandler)

	ss.server.AddTool(mcp.NewTool("read_getter",
		mcp.WithDescription("Evaluate a registered getter"),
		mcp.WithString("name",
			mcp.Description("Getter name, e.g. isResourceApiPending"),
			mcp.Required(),
		),
	), ss.readGetterHandler)

	ss.server.AddTool(mcp.NewTool("validate_simulation",
		mcp.WithDescription("Validate a simulation YAML file without running it"),
		mcp.WithString("config_path",
			mcp.Description("Path to the simulation YAML file"),
			mcp.Required(),
		),
	), ss.validateSimulationHandler)
}

func (ss *StoreMCPServer) registerResources() {
	resource := mcp.NewResource(StateURI, "Store State",
		mcp.WithResourceDescription("Current state tree of every registered namespace"),
		mcp.WithMIMEType("application/json"),
	)
	ss.server.AddResource(resource, ss.stateHandler)
}

func (ss *StoreMCPServer) deriveNamesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespace, err := request.RequireString("namespace")
	if err != nil {
		return mcp.NewToolResultError("namespace argument is required"), nil
	}
	b, err := binding.New(namespace)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"namespace": b.Namespace(),
		"mutations": b.MutationNames().All(),
		"getters":   b.GetterNames().All(),
	})
}

func (ss *StoreMCPServer) queryStateHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required"), nil
	}
	result, err := ss.store.Query(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"path":   path,
		"result": store.Plain(result),
	})
}

func (ss *StoreMCPServer) readGetterHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required"), nil
	}
	value, err := ss.store.Getter(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"name":  name,
		"value": store.Plain(value),
	})
}

func (ss *StoreMCPServer) validateSimulationHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configPath, err := request.RequireString("config_path")
	if err != nil {
		return mcp.NewToolResultError("config_path argument is required"), nil
	}
	sim, err := loader.LoadSimulation(configPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load simulation: %v", err)), nil
	}

	result := loader.Validate(sim)
	errs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		errs = append(errs, e.String())
	}

	return jsonResult(map[string]any{
		"valid":        result.IsValid(),
		"module_count": len(sim.Modules),
		"errors":       errs,
	})
}

func (ss *StoreMCPServer) stateHandler(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(map[string]any{
		"namespaces": ss.store.Namespaces(),
		"state":      store.Plain(ss.store.State()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StateURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
