// Package format derives the format tag of a target file from its name.
package format

import (
	"path/filepath"
	"strings"
)

// Tag selects the parser and serializer pair used for a target
type Tag string

// Known tags. Detect may return any other extension; those are rejected at parse time.
const (
	TagJSON Tag = "json"
	TagTOML Tag = "toml"
	TagText Tag = "text"
)

// Detect returns the last extension of the target's file name, without the
// leading dot. The second result is false when the name has no extension.
// A leading dot marks a hidden file, not an extension: ".bashrc" has none.
// A trailing dot is an empty extension: "weird." yields ("", true).
func Detect(target string) (Tag, bool) {
	base := filepath.Base(target)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || base == ".." {
		return "", false
	}
	return Tag(base[idx+1:]), true
}
