package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/p/force-app/main/default"

func TestClassify_Table(t *testing.T) {
	tests := []struct {
		path   string
		typ    string
		member string
		rule   string
	}{
		{root + "/lwc/myLwc/myLwc.js", TypeLightningComponentBundle, "myLwc", "lwc-bundle"},
		{root + "/lwc/myLwc/myLwc.js-meta.xml", TypeLightningComponentBundle, "myLwc", "lwc-bundle"},
		{root + "/lwc/myLwc/__tests__/myLwc.test.js", TypeLightningComponentBundle, "myLwc", "lwc-bundle"},
		{root + "/aura/myAura/myAura.cmp", TypeAuraDefinitionBundle, "myAura", "aura-bundle"},
		{root + "/classes/Hello.cls", TypeApexClass, "Hello", "apex-class"},
		{root + "/triggers/MyTrig.trigger", TypeApexTrigger, "MyTrig", "apex-trigger"},
		{root + "/flows/MyFlow.flow-meta.xml", TypeFlow, "MyFlow", "flow-meta"},
		{root + "/flows/MyFlow.flow", TypeFlow, "MyFlow", "flow-file"},
		{root + "/layouts/Foo__c-Layout.layout-meta.xml", TypeLayout, "Foo__c-Layout-meta", "layout"},
		{root + "/flexipages/MyPage.flexipage-meta.xml", TypeFlexiPage, "MyPage", "flexipage"},
		{root + "/testSuites/DecisionSuite.testSuite-meta.xml", TypeApexTestSuite, "DecisionSuite", "test-suite"},
		{root + "/testSuites/Lower.testsuite-meta.xml", TypeApexTestSuite, "Lower", "test-suite"},
		{root + "/pages/MyPage.page", TypeApexPage, "MyPage", "apex-page"},
		{root + "/tabs/Foo__c.tab-meta.xml", TypeCustomTab, "Foo__c", "custom-tab"},
		{root + "/objects/Foo__c/Foo__c.object-meta.xml", TypeCustomObject, "Foo__c", "object-meta"},
		{root + "/objects/Foo__c/Foo__c.object", TypeCustomObject, "Foo__c", "object-file"},
		{"/p/src/objects/Account.xml", TypeCustomObject, "Account", "object-xml"},
		{"/p/src/objects/Foo.object.xml", TypeCustomObject, "Foo", "object-xml"},
		{root + "/objects/Foo__c/fields/Bar__c.field-meta.xml", TypeCustomField, "Foo__c.Bar__c", "field-meta"},
		{"/p/src/objects/Foo__c/fields/Bar__c.field", TypeCustomField, "Foo__c.Bar__c", "field-file"},
		{"/p/src/objects/Foo__c/fields/Bar__c.xml", TypeCustomField, "Foo__c.Bar__c", "field-xml"},
		{"/p/custom/Foo__c/fields/Baz__c.xml", TypeCustomField, "Foo__c.Baz__c", "field-xml"},
		{root + "/profiles/Admin.profile-meta.xml", TypeProfile, "Admin-meta", "profile"},
		{"/p/other/Legacy.flow-meta.xml", TypeFlow, "Legacy-meta", "flow-meta-loose"},
		{root + "/groups/Team.group-meta.xml", TypeGroup, "Team-meta", "group"},
		{"/p/flows/Old.flowDefinition", TypeFlow, "Old", "flow-path"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Classify(tt.path)
			assert.Equal(t, Matched, got.Outcome)
			assert.Equal(t, tt.typ, got.Type)
			assert.Equal(t, tt.member, got.Member)
			assert.Equal(t, tt.rule, got.Rule)
		})
	}
}

func TestClassify_Skipped(t *testing.T) {
	tests := map[string]string{
		root + "/classes/Hello.cls-meta.xml":      "apex-companion",
		root + "/triggers/MyTrig.trigger-meta.xml": "apex-companion",
		"/p/loose/fields/Bar__c.field-meta.xml":   "field-meta-unparsed",
	}
	for p, rule := range tests {
		got := Classify(p)
		assert.Equal(t, Skipped, got.Outcome, p)
		assert.Equal(t, rule, got.Rule, p)
		assert.Empty(t, got.Type, p)
		assert.Empty(t, got.Member, p)
		assert.NotEmpty(t, got.Reason, p)
	}
	assert.NotEqual(t,
		Classify(root+"/classes/Hello.cls-meta.xml").Reason,
		Classify("/p/loose/fields/Bar__c.field-meta.xml").Reason)
}

func TestClassify_Unmatched(t *testing.T) {
	for _, p := range []string{
		"/p/README.md",
		"/p/staticresources/logo.png",
		"/p/mylwc/foo/foo.js", // "lwc/" must start at a word boundary
		"/p/scripts/apex/hello.apex",
		"/p/config/project-scratch-def.json",
	} {
		got := Classify(p)
		assert.Equal(t, Unmatched, got.Outcome, p)
		assert.Empty(t, got.Rule, p)
	}
}

func TestClassify_BundlePrecedence(t *testing.T) {
	got := Classify(root + "/lwc/foo/foo.js")
	assert.Equal(t, TypeLightningComponentBundle, got.Type)
	assert.Equal(t, "foo", got.Member)

	// A class file inside a bundle directory still belongs to the bundle.
	got = Classify(root + "/lwc/foo/Helper.cls")
	assert.Equal(t, TypeLightningComponentBundle, got.Type)

	got = Classify(root + "/aura/bar/Helper.cls")
	assert.Equal(t, TypeAuraDefinitionBundle, got.Type)
	assert.Equal(t, "bar", got.Member)
}

func TestClassify_ExtensionCaseRules(t *testing.T) {
	// Extension matching is case-insensitive but the base name keeps a
	// suffix that differs in case.
	got := Classify("/p/classes/Foo.CLS")
	assert.Equal(t, TypeApexClass, got.Type)
	assert.Equal(t, "Foo.CLS", got.Member)
}

func TestClassify_IsDeterministic(t *testing.T) {
	p := root + "/objects/Foo__c/fields/Bar__c.field-meta.xml"
	first := Classify(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(p))
	}
}

func TestNewCandidate(t *testing.T) {
	c := NewCandidate("/p/classes/Hello.cls-meta.xml")
	assert.Equal(t, "/p/classes/Hello.cls-meta.xml", c.Path)
	assert.Equal(t, "Hello.cls-meta.xml", c.Name)
	assert.Equal(t, ".xml", c.Ext)
	assert.Equal(t, "Hello.cls-meta", c.Base)

	c = NewCandidate("/p/.forceignore")
	assert.Empty(t, c.Ext)
	assert.Equal(t, ".forceignore", c.Base)

	c = NewCandidate("/p/Makefile")
	assert.Empty(t, c.Ext)
	assert.Equal(t, "Makefile", c.Base)
}

func TestDefaultRules_OrderAndNames(t *testing.T) {
	rules := DefaultRules()
	require.NotEmpty(t, rules)
	assert.Equal(t, "lwc-bundle", rules[0].Name)
	assert.Equal(t, "aura-bundle", rules[1].Name)
	assert.Equal(t, "flow-path", rules[len(rules)-1].Name)

	seen := map[string]bool{}
	for _, r := range rules {
		assert.False(t, seen[r.Name], "duplicate rule name %s", r.Name)
		seen[r.Name] = true
		assert.NotNil(t, r.Match, r.Name)
	}

	// Mutating the copy must not affect the classifier.
	rules[0] = Rule{Name: "broken", Type: "X", Match: func(Candidate) (string, bool) { return "x", true }}
	assert.Equal(t, TypeApexClass, Classify("/p/classes/A.cls").Type)
}

func TestNew_CustomRules(t *testing.T) {
	c := New(Rule{Name: "everything", Type: "Static", Match: func(c Candidate) (string, bool) {
		return c.Base, true
	}})
	got := c.Classify("/x/logo.png")
	assert.Equal(t, Matched, got.Outcome)
	assert.Equal(t, "Static", got.Type)
	assert.Equal(t, "logo", got.Member)
	assert.Len(t, c.Rules(), 1)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "matched", Matched.String())
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "unmatched", Unmatched.String())
}
