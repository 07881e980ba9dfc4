/*
Package config loads patch manifests.

A manifest names the documents to patch, the shared rules, and the backup
marker used to derive backup file names. Three formats are accepted, chosen
by file extension:

	.yaml / .yml   gopkg.in/yaml.v3, unknown fields rejected
	.hcl           hashicorp/hcl/v2, rule and document blocks
	.json          encoding/json, unknown fields rejected

🔍 Example (YAML):

	backup_marker: one-stop
	rules:
	  - name: stylesheet
	    pattern: '(<link rel="stylesheet" href="css/modern-ai-pages.css">)'
	    template: "${1}\n    <link rel=\"stylesheet\" href=\"css/one-stop-services.css\">"
	    sentinel: one-stop-services.css
	documents:
	  - path: html/*.html
	    rules: [stylesheet]

Templates may live in separate files (template_file), resolved relative to
the manifest. Every rule is compiled during validation, so a broken pattern
is reported before any document is touched.
*/
package config
