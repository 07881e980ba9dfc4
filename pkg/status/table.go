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

package status

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 📋 RenderSummary writes the end-of-run table to w
func RenderSummary(w io.Writer, rows []Row) error {
	data := pterm.TableData{{"Document", "Status", "Rules", "Backup", "Error"}}
	for _, r := range rows {
		detail := r.Detail
		if r.Kind != "" {
			detail = fmt.Sprintf("[%s] %s", r.Kind, r.Detail)
		}
		data = append(data, []string{
			r.Path,
			r.Status.String(),
			fmt.Sprintf("%d/%d", r.Applied, r.Total),
			r.Backup,
			detail,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render(); err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}
	return nil
}

// Count returns the number of rows whose status is OK
func Count(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Status.OK() {
			n++
		}
	}
	return n
}
