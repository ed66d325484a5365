package manifest

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type xmlPackage struct {
	XMLName xml.Name `xml:"Package"`
	Types   []struct {
		Members []string `xml:"members"`
		Name    string   `xml:"name"`
	} `xml:"types"`
	Version string `xml:"version"`
}

// Parse reads a package.xml document back into a TypeMap and its API
// version. Anything before the <Package> element, such as a named-manifest
// header, is ignored.
func Parse(doc string) (*TypeMap, string, error) {
	i := strings.Index(doc, "<Package")
	if i < 0 {
		return nil, "", fmt.Errorf("cannot parse manifest: no <Package> element")
	}
	var pkg xmlPackage
	if err := xml.Unmarshal([]byte(doc[i:]), &pkg); err != nil {
		return nil, "", fmt.Errorf("cannot parse manifest: %w", err)
	}
	types := NewTypeMap()
	for _, t := range pkg.Types {
		for _, m := range t.Members {
			types.Add(strings.TrimSpace(t.Name), strings.TrimSpace(m))
		}
	}
	return types, strings.TrimSpace(pkg.Version), nil
}
