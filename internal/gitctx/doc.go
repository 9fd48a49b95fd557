// Package gitctx reads repository metadata for a project root and fetches
// remote repositories given on the command line.
//
// Everything goes through go-git, so no git binary is required. [Meta]
// reports the work tree root, HEAD commit and branch for a directory inside a
// repository; [Clone] makes a shallow, single-branch copy of a remote URL in a
// temporary directory that the caller removes when done.
package gitctx
