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

package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Rules and documents are blocks labelled with their name and path:
//
//	backup_marker = "one-stop"
//
//	rule "stylesheet" {
//	  pattern  = "(<link rel=\"stylesheet\" href=\"css/site.css\">)"
//	  template = "$${1}\n<link rel=\"stylesheet\" href=\"css/extra.css\">"
//	}
//
//	document "html/index.html" {
//	  rules = ["stylesheet"]
//	}
//
// HCL treats ${ as interpolation, so capture references are written $${1}.
type HCLParser struct{}

type hclRule struct {
	Name         string `hcl:"name,label"`
	Pattern      string `hcl:"pattern"`
	Template     string `hcl:"template,optional"`
	TemplateFile string `hcl:"template_file,optional"`
	Literal      bool   `hcl:"literal,optional"`
	Required     bool   `hcl:"required,optional"`
	Sentinel     string `hcl:"sentinel,optional"`
}

type hclDocument struct {
	Path        string    `hcl:"path,label"`
	Rules       []string  `hcl:"rules,optional"`
	InlineRules []hclRule `hcl:"rule,block"`
}

type hclManifest struct {
	Name         string        `hcl:"name,optional"`
	Description  string        `hcl:"description,optional"`
	BackupMarker string        `hcl:"backup_marker,optional"`
	Rules        []hclRule     `hcl:"rule,block"`
	Documents    []hclDocument `hcl:"document,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the manifest from HCL
func (p *HCLParser) Parse(ctx context.Context, filename string, data []byte) (*Manifest, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"trimspace": stdlib.TrimSpaceFunc,
			"join":      stdlib.JoinFunc,
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"format":    stdlib.FormatFunc,
		},
	}

	var raw hclManifest
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	m := &Manifest{
		Name:         raw.Name,
		Description:  raw.Description,
		BackupMarker: raw.BackupMarker,
	}
	for _, r := range raw.Rules {
		m.Rules = append(m.Rules, r.toRule())
	}
	for _, d := range raw.Documents {
		doc := Document{Path: d.Path, Rules: d.Rules}
		for _, r := range d.InlineRules {
			doc.InlineRules = append(doc.InlineRules, r.toRule())
		}
		m.Documents = append(m.Documents, doc)
	}

	return m, nil
}

func (r hclRule) toRule() Rule {
	return Rule{
		Name:         r.Name,
		Pattern:      r.Pattern,
		Template:     r.Template,
		TemplateFile: r.TemplateFile,
		Literal:      r.Literal,
		Required:     r.Required,
		Sentinel:     r.Sentinel,
	}
}
