package classify

import (
	"regexp"
	"strings"
)

// Metadata type names as they appear in <name> elements.
const (
	TypeLightningComponentBundle = "LightningComponentBundle"
	TypeAuraDefinitionBundle     = "AuraDefinitionBundle"
	TypeApexClass                = "ApexClass"
	TypeApexTrigger              = "ApexTrigger"
	TypeFlow                     = "Flow"
	TypeLayout                   = "Layout"
	TypeFlexiPage                = "FlexiPage"
	TypeApexTestSuite            = "ApexTestSuite"
	TypeApexPage                 = "ApexPage"
	TypeCustomTab                = "CustomTab"
	TypeCustomObject             = "CustomObject"
	TypeCustomField              = "CustomField"
	TypeProfile                  = "Profile"
	TypeGroup                    = "Group"
)

// Rule is one entry of the classification table. A rule with an empty Type
// that matches marks the file as deliberately skipped, for the given Reason.
type Rule struct {
	Name   string
	Type   string
	Reason string
	Match  func(c Candidate) (member string, ok bool)
}

var (
	lwcBundleRe   = regexp.MustCompile(`\blwc/([^/]+)`)
	auraBundleRe  = regexp.MustCompile(`\baura/([^/]+)`)
	flowMetaRe    = regexp.MustCompile(`/flows/([^/]+)\.flow-meta\.xml$`)
	testSuiteRe   = regexp.MustCompile(`(?i)\.testSuite-meta\.xml$`)
	testSuiteSfx  = regexp.MustCompile(`(?i)\.testSuite-meta$`)
	objectXMLRe   = regexp.MustCompile(`/objects/([^/]+)\.xml$`)
	fieldMetaRe   = regexp.MustCompile(`/objects/([^/]+)/fields/([^/]+)\.field-meta\.xml$`)
	fieldFileRe   = regexp.MustCompile(`/objects/([^/]+)/fields/([^/]+)\.field$`)
	anyFieldXMLRe = regexp.MustCompile(`/([^/]+)/fields/([^/]+)\.xml$`)
	flowPathRe    = regexp.MustCompile(`/flows/([^/]+)\.flow`)
)

// Member names are produced exactly as below, including the single
// first-occurrence removals that leave e.g. "Foo-Layout-meta" for a layout.
// Existing deployment sets depend on these strings.
var defaultRules = []Rule{
	{Name: "lwc-bundle", Type: TypeLightningComponentBundle, Match: submatch(lwcBundleRe)},
	{Name: "aura-bundle", Type: TypeAuraDefinitionBundle, Match: submatch(auraBundleRe)},
	{Name: "apex-class", Type: TypeApexClass, Match: extBase(".cls")},
	{Name: "apex-trigger", Type: TypeApexTrigger, Match: extBase(".trigger")},
	{Name: "flow-meta", Type: TypeFlow, Match: submatch(flowMetaRe)},
	{Name: "flow-file", Type: TypeFlow, Match: extBase(".flow")},
	{Name: "apex-companion", Reason: "Apex companion metadata, deployed with its class or trigger", Match: func(c Candidate) (string, bool) {
		return "", c.Ext == ".xml" &&
			(strings.HasSuffix(c.Path, ".cls-meta.xml") || strings.HasSuffix(c.Path, ".trigger-meta.xml"))
	}},
	{Name: "layout", Type: TypeLayout, Match: xmlSuffix(".layout-meta.xml", ".layout")},
	{Name: "flexipage", Type: TypeFlexiPage, Match: xmlSuffix(".flexipage-meta.xml", ".flexipage-meta")},
	{Name: "test-suite", Type: TypeApexTestSuite, Match: func(c Candidate) (string, bool) {
		if c.Ext != ".xml" || !testSuiteRe.MatchString(c.Path) {
			return "", false
		}
		return testSuiteSfx.ReplaceAllString(c.Base, ""), true
	}},
	{Name: "apex-page", Type: TypeApexPage, Match: extBase(".page")},
	{Name: "custom-tab", Type: TypeCustomTab, Match: xmlSuffix(".tab-meta.xml", ".tab-meta")},
	{Name: "object-meta", Type: TypeCustomObject, Match: func(c Candidate) (string, bool) {
		if c.Ext != ".xml" || !strings.HasSuffix(c.Path, ".object-meta.xml") {
			return "", false
		}
		return c.trimName(".object-meta.xml"), true
	}},
	{Name: "object-file", Type: TypeCustomObject, Match: extBase(".object")},
	{Name: "object-xml", Type: TypeCustomObject, Match: func(c Candidate) (string, bool) {
		if c.Ext != ".xml" || !strings.Contains(c.Path, "/objects/") || strings.Contains(c.Path, "/fields/") {
			return "", false
		}
		m := objectXMLRe.FindStringSubmatch(c.Path)
		if m == nil {
			return "", false
		}
		name := strings.TrimSuffix(m[1], ".object")
		return strings.TrimSuffix(name, ".object-meta"), true
	}},
	{Name: "field-meta", Type: TypeCustomField, Match: func(c Candidate) (string, bool) {
		if !isFieldMeta(c) {
			return "", false
		}
		return objectField(fieldMetaRe, c.Path, "")
	}},
	{Name: "field-meta-unparsed", Reason: "field metadata outside objects/<Object>/fields/", Match: func(c Candidate) (string, bool) {
		return "", isFieldMeta(c)
	}},
	{Name: "field-file", Type: TypeCustomField, Match: func(c Candidate) (string, bool) {
		if c.Ext != ".field" || !strings.Contains(c.Path, "/fields/") {
			return "", false
		}
		return objectField(fieldFileRe, c.Path, "")
	}},
	{Name: "field-xml", Type: TypeCustomField, Match: func(c Candidate) (string, bool) {
		if c.Ext != ".xml" || !strings.Contains(c.Path, "/fields/") {
			return "", false
		}
		return objectField(anyFieldXMLRe, c.Path, ".field-meta")
	}},
	{Name: "profile", Type: TypeProfile, Match: xmlSuffix(".profile-meta.xml", ".profile")},
	{Name: "flow-meta-loose", Type: TypeFlow, Match: xmlSuffix(".flow-meta.xml", ".flow")},
	{Name: "group", Type: TypeGroup, Match: xmlSuffix(".group-meta.xml", ".group")},
	{Name: "flow-path", Type: TypeFlow, Match: submatch(flowPathRe)},
}

// DefaultRules returns a copy of the built-in table in priority order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

func submatch(re *regexp.Regexp) func(Candidate) (string, bool) {
	return func(c Candidate) (string, bool) {
		m := re.FindStringSubmatch(c.Path)
		if m == nil {
			return "", false
		}
		return m[1], true
	}
}

func extBase(ext string) func(Candidate) (string, bool) {
	return func(c Candidate) (string, bool) {
		if c.Ext != ext {
			return "", false
		}
		return c.Base, true
	}
}

// xmlSuffix matches .xml files whose path ends in suffix and derives the
// member by deleting the first occurrence of cut from the base name.
func xmlSuffix(suffix, cut string) func(Candidate) (string, bool) {
	return func(c Candidate) (string, bool) {
		if c.Ext != ".xml" || !strings.HasSuffix(c.Path, suffix) {
			return "", false
		}
		return strings.Replace(c.Base, cut, "", 1), true
	}
}

func isFieldMeta(c Candidate) bool {
	return c.Ext == ".xml" && strings.Contains(c.Path, "/fields/") && strings.HasSuffix(c.Path, ".field-meta.xml")
}

// objectField builds "<object>.<field>" from the two submatches of re,
// deleting the first occurrence of cut from the field part.
func objectField(re *regexp.Regexp, p, cut string) (string, bool) {
	m := re.FindStringSubmatch(p)
	if m == nil {
		return "", false
	}
	field := m[2]
	if cut != "" {
		field = strings.Replace(field, cut, "", 1)
	}
	return m[1] + "." + field, true
}
