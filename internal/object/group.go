package object

// Group is an ordered set of objects. Draw order is insertion order.
// Membership is ownership: an object removed from every group is gone.
type Group struct {
	items []Object
}

// Add appends obj unless it is already a member.
func (g *Group) Add(obj Object) {
	if g.Has(obj) {
		return
	}
	g.items = append(g.items, obj)
}

// Remove deletes obj, reporting whether it was a member.
func (g *Group) Remove(obj Object) bool {
	for i, o := range g.items {
		if o == obj {
			copy(g.items[i:], g.items[i+1:])
			g.items[len(g.items)-1] = nil
			g.items = g.items[:len(g.items)-1]
			return true
		}
	}
	return false
}

// Has reports whether obj is a member.
func (g *Group) Has(obj Object) bool {
	for _, o := range g.items {
		if o == obj {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.items)
}

// Objects returns a copy of the members, safe to iterate while the group changes.
func (g *Group) Objects() []Object {
	out := make([]Object, len(g.items))
	copy(out, g.items)
	return out
}

// Clear removes every member.
func (g *Group) Clear() {
	clear(g.items)
	g.items = g.items[:0]
}
