package selection

// Add appends every path in add that is not already in current, keeping the
// order of first appearance.
func Add(current, add []string) []string {
	seen := make(map[string]bool, len(current)+len(add))
	out := make([]string, 0, len(current)+len(add))
	for _, group := range [][]string{current, add} {
		for _, p := range group {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Remove drops every path in remove from current.
func Remove(current, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, p := range remove {
		drop[p] = true
	}
	out := make([]string, 0, len(current))
	for _, p := range current {
		if !drop[p] {
			out = append(out, p)
		}
	}
	return out
}
