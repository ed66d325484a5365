package manifest

// TypeMap maps metadata type names to member names. Types and members keep
// the order in which they were first added; adding a member twice is a no-op.
type TypeMap struct {
	order   []string
	members map[string]*memberSet
}

type memberSet struct {
	order []string
	seen  map[string]struct{}
}

// NewTypeMap returns an empty map.
func NewTypeMap() *TypeMap {
	return &TypeMap{members: make(map[string]*memberSet)}
}

// Add records member under typ and reports whether it was new.
func (m *TypeMap) Add(typ, member string) bool {
	set, ok := m.members[typ]
	if !ok {
		set = &memberSet{seen: make(map[string]struct{})}
		m.members[typ] = set
		m.order = append(m.order, typ)
	}
	if _, dup := set.seen[member]; dup {
		return false
	}
	set.seen[member] = struct{}{}
	set.order = append(set.order, member)
	return true
}

// Types returns type names in first-seen order.
func (m *TypeMap) Types() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Members returns the members of typ in first-seen order.
func (m *TypeMap) Members(typ string) []string {
	set, ok := m.members[typ]
	if !ok {
		return nil
	}
	out := make([]string, len(set.order))
	copy(out, set.order)
	return out
}

// Len returns the number of types.
func (m *TypeMap) Len() int { return len(m.order) }
