package manifest

import (
	"encoding/xml"
	"strings"
)

// Namespace is the metadata API namespace of the <Package> element.
const Namespace = "http://soap.sforce.com/2006/04/metadata"

// Render writes m as a package.xml document. Lines are joined with "\n" and
// the document has no trailing newline.
func Render(m *TypeMap, version string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<Package xmlns="` + Namespace + `">` + "\n")
	for _, typ := range m.Types() {
		b.WriteString("  <types>\n")
		for _, member := range m.Members(typ) {
			b.WriteString("    <members>" + escape(member) + "</members>\n")
		}
		b.WriteString("    <name>" + escape(typ) + "</name>\n")
		b.WriteString("  </types>\n")
	}
	b.WriteString("  <version>" + escape(version) + "</version>\n")
	b.WriteString("</Package>")
	return b.String()
}

func escape(s string) string {
	if !strings.ContainsAny(s, `<>&'"`) {
		return s
	}
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
