package label

// CommonParent returns the longest common ancestor of p1 and p2.
// The shorter operand is shortened until it prefixes the other one;
// paths sharing nothing meet at the empty root path.
func CommonParent(p1, p2 Path) Path {
	if p1.Len() > p2.Len() {
		p1, p2 = p2, p1
	}
	for !p2.HasPrefix(p1) {
		parent, ok := p1.Parent()
		if !ok {
			return Path{}
		}
		p1 = parent
	}
	return p1
}

// DiffPaths returns to relative to the parent of from. When from has no
// parent, to is returned unchanged.
func DiffPaths(from, to Path) Path {
	parent, ok := from.Parent()
	if !ok {
		return to
	}
	return parent.Rel(to)
}
