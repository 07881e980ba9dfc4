/*
Package operation runs patch operations over documents.

	+-------------+
	|   Runner    |
	| (fan out)   |
	+------+------+
	       |
	+------+------+
	|  Operation  |
	| apply/restore|
	+------+------+
	       |
	+------+------+     +-------------+
	|  document   | <-> |    patch    |
	|  (I/O)      |     |   (pure)    |
	+-------------+     +-------------+

🔄 Flow for apply, per document:
1. Read the document
2. Fold the rules over the text
3. Write the pre-run text as the backup (skipped for --no-backup)
4. Write the result

Steps 3 and 4 are skipped for dry runs and when nothing changed, so a rerun
that finds every sentinel in place keeps the earlier backup.

⚡ Failure handling:
Every failure is caught at the document boundary and recorded on the
Outcome with its kind (read, backup, no-match, write). The next document is
processed as if nothing happened. A required rule that misses means the
document and its backup are never written.

Documents share no state, so the runner can process them concurrently
(errgroup with a limit). Output is still reported in manifest order.
*/
package operation
