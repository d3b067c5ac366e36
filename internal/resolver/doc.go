// Package resolver turns a raw, format-agnostic build configuration into a
// validated, immutable ResolvedConfig for consumption by a build engine.
//
// Resolution is a pure transformation. It never touches the filesystem:
// relative paths are joined lexically onto the raw model's BaseDir. Any
// validation failure aborts resolution and no partial configuration is
// returned.
//
// Transform rules keep their declaration order. Match scans them front to
// back and returns the first rule whose test matches and whose exclusions do
// not.
package resolver
