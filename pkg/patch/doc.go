/*
Package patch implements anchored template injection over plain text.

	+-------------+      +-------------+      +-------------+
	|   rule 1    | ---> |   rule 2    | ---> |   rule n    |
	| find+splice |      | find+splice |      | find+splice |
	+-------------+      +-------------+      +-------------+

🎯 Purpose:
- Locate a span with a regular expression (first match, . matches newlines)
- Replace only that span with an expanded template
- Feed the result into the next rule

⚡ Rules:
- Required rules that miss abort the document with ErrNoMatch
- Optional rules that miss are reported as skipped
- A rule with a sentinel is skipped when the sentinel is already present

Sentinels are the only way to make re-runs safe. Without them applying the
same rules twice may insert the same content twice.

The package does no I/O. Reading, backing up and writing documents live in
the document and operation packages.

🔍 Example:

	rules, err := patch.CompileAll([]patch.Definition{{
		Name:     "stylesheet",
		Pattern:  `(<link rel="stylesheet" href="css/site.css">)`,
		Template: "${1}\n<link rel=\"stylesheet\" href=\"css/extra.css\">",
	}})
	res, err := patch.Patch(ctx, page, rules)
*/
package patch
