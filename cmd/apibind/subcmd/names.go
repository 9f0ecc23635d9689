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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/krishnagopinath/vuex-api-util/kernel/binding"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func init() {
	RootCmd.AddCommand(NewNamesCommand())
}

func NewNamesCommand() *cobra.Command {
	namesCmd := &NamesCommand{}

	cmd := &cobra.Command{
		Use:   "names <namespace>",
		Short: "Show the mutation and getter names generated for a namespace",
		Args:  cobra.ExactArgs(1),
		RunE:  namesCmd.run,
	}

	cmd.Flags().StringVarP(&namesCmd.Format, "format", "f", "table", "output format: table, json or yaml")

	return cmd
}

type NamesCommand struct {
	Format string
}

type namesOutput struct {
	Namespace string   `json:"namespace" yaml:"namespace"`
	Mutations []string `json:"mutations" yaml:"mutations"`
	Getters   []string `json:"getters" yaml:"getters"`
}

func (n *NamesCommand) run(cmd *cobra.Command, args []string) error {
	b, err := binding.New(args[0])
	if err != nil {
		return err
	}
	mutations := b.MutationNames()
	getters := b.GetterNames()
	out := cmd.OutOrStdout()

	switch n.Format {
	case "json":
		data, err := json.MarshalIndent(namesOutput{b.Namespace(), mutations.All(), getters.All()}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(namesOutput{b.Namespace(), mutations.All(), getters.All()})
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "table":
		t := newTable(out)
		t.AppendHeader(table.Row{"Kind", "Role", "Name"})
		t.AppendRows([]table.Row{
			{"mutation", "full state", mutations.SetFullState},
			{"mutation", "request status", mutations.SetRequestStatus},
			{"mutation", "error", mutations.SetError},
			{"mutation", "data", mutations.SetData},
		})
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"getter", "full state", getters.FullState},
			{"getter", "not started", getters.IsNotStarted},
			{"getter", "pending", getters.IsPending},
			{"getter", "success", getters.IsSuccess},
			{"getter", "error", getters.IsError},
			{"getter", "request status", getters.RequestStatus},
			{"getter", "data", getters.Data},
			{"getter", "error value", getters.Error},
		})
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown format '%s'", n.Format)
	}
}
