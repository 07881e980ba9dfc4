// Package document owns every side effect on patched files: reading the
// original, writing the backup, replacing the document atomically, and
// restoring from a backup. It works on an afero.Fs so the same code runs
// against the local disk and against in-memory filesystems in tests.
package document
