// Package classify maps deployable file paths to Salesforce metadata types
// and member names using an ordered rule table. The first matching rule wins.
// Classification is a pure function of the path string.
package classify

// Outcome tells how a path was classified.
type Outcome int

const (
	// Unmatched means no rule recognised the path.
	Unmatched Outcome = iota
	// Matched means a rule produced a type and member.
	Matched
	// Skipped means a rule recognised the path as something that is never
	// deployed on its own, such as an Apex companion -meta.xml.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Skipped:
		return "skipped"
	default:
		return "unmatched"
	}
}

// Result is the outcome of classifying one path.
type Result struct {
	Outcome Outcome
	Type    string
	Member  string
	Rule    string // name of the rule that fired; empty when unmatched
	Reason  string // why a Skipped file contributes no member
}

// Classifier evaluates rules in order.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, or over DefaultRules when none are
// given.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify runs the rule table against p.
func (c *Classifier) Classify(p string) Result {
	cand := NewCandidate(p)
	for _, r := range c.rules {
		member, ok := r.Match(cand)
		if !ok {
			continue
		}
		if r.Type == "" {
			return Result{Outcome: Skipped, Rule: r.Name, Reason: r.Reason}
		}
		return Result{Outcome: Matched, Type: r.Type, Member: member, Rule: r.Name}
	}
	return Result{Outcome: Unmatched}
}

var std = New()

// Classify classifies p with the default rule table.
func Classify(p string) Result {
	return std.Classify(p)
}
