// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/walteh/pagepatch/cmd/pagepatch/opts"
	"github.com/walteh/pagepatch/pkg/preset"
)

func NewPresetsCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List bundled presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := preset.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range presets {
				fmt.Fprintf(o.Stdout, "📦 %s %s\n", color.New(color.Bold).Sprint(p.Name),
					color.New(color.Faint).Sprintf("(%d documents)", p.Documents))
				if p.Description != "" {
					fmt.Fprintf(o.Stdout, "   %s\n", p.Description)
				}
			}
			return nil
		},
	}
}
