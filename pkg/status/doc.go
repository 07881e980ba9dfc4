/*
Package status presents the outcome of a patch run.

	            +-------------+
	            |   Status    |
	            | (Reporting) |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |           |           |
	+-----+----+ +----+----+ +----+----+
	|  Lines   | |  Table  | |  Diff   |
	| (emoji)  | | (pterm) | | (dmp)   |
	+----------+ +---------+ +---------+

🎯 Purpose:
- Classify each document (patched, unchanged, preview, failed, restored)
- Render one status line per document
- Render the end-of-run summary table
- Produce a line diff for dry runs

Nothing in here touches the filesystem; the document package owns I/O.
*/
package status
