package classify

import (
	"path"
	"path/filepath"
	"strings"
)

// Candidate is a file path prepared for rule matching.
type Candidate struct {
	// Path uses forward slashes regardless of platform.
	Path string
	// Name is the last path element.
	Name string
	// Ext is the lower-cased extension of Name, including the dot. Names
	// without a dot, or whose only dot is the leading one, have no extension.
	Ext string
	// Base is Name with Ext removed when Name ends in it exactly; a file
	// named Foo.CLS keeps its suffix because the comparison is case-sensitive.
	Base string
}

// NewCandidate normalises p for classification. It never touches the
// filesystem.
func NewCandidate(p string) Candidate {
	norm := filepath.ToSlash(p)
	name := path.Base(norm)

	var ext string
	if i := strings.LastIndex(name, "."); i > 0 {
		ext = strings.ToLower(name[i:])
	}

	base := name
	if ext != "" && name != ext && strings.HasSuffix(name, ext) {
		base = strings.TrimSuffix(name, ext)
	}

	return Candidate{Path: norm, Name: name, Ext: ext, Base: base}
}

// trimName removes suffix from the file name if it ends with it and is not
// equal to it.
func (c Candidate) trimName(suffix string) string {
	if c.Name != suffix && strings.HasSuffix(c.Name, suffix) {
		return strings.TrimSuffix(c.Name, suffix)
	}
	return c.Name
}
