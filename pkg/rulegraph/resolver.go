package rulegraph

// Resolve computes the locked set for a selection: every id transitively
// required by explicit through deps that is not itself explicit.
//
// A single visited set is shared across all roots, so shared dependencies are
// walked once and a cyclic edge set terminates: revisiting an id stops
// further descent from it. Resolve(∅, deps) is ∅, and re-resolving
// explicit ∪ Resolve(explicit) yields the same locked set.
func Resolve(explicit map[ID]struct{}, deps map[ID][]ID) map[ID]struct{} {
	locked := make(map[ID]struct{})
	if len(explicit) == 0 {
		return locked
	}

	visited := make(map[ID]struct{}, len(explicit))
	stack := make([]ID, 0, len(explicit))
	for id := range explicit {
		stack = append(stack, id)
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, req := range deps[id] {
			if _, seen := visited[req]; seen {
				continue
			}
			visited[req] = struct{}{}
			if _, isExplicit := explicit[req]; !isExplicit {
				locked[req] = struct{}{}
			}
			stack = append(stack, req)
		}
	}
	return locked
}

// Resolve computes the locked set for explicit against this graph's
// dependency map.
func (g *Graph) Resolve(explicit map[ID]struct{}) map[ID]struct{} {
	return Resolve(explicit, g.DependencyMap)
}

// Dependents returns the transitive set of rule sets that require id,
// directly or through intermediaries. It walks the reverse-dependency map
// with the same visited-set cycle guard as Resolve.
func (g *Graph) Dependents(id ID) map[ID]struct{} {
	out := make(map[ID]struct{})
	visited := map[ID]struct{}{id: {}}
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dep := range g.ReverseDependencyMap[cur] {
			if _, seen := visited[dep]; seen {
				continue
			}
			visited[dep] = struct{}{}
			out[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}
	return out
}

// RequiredBy returns the members of explicit whose requirement closure
// reaches id — the concrete reason a locked entry cannot be deselected.
// The result is empty when nothing explicit requires id.
func (g *Graph) RequiredBy(explicit map[ID]struct{}, id ID) []ID {
	dependents := g.Dependents(id)
	var out []ID
	for e := range explicit {
		if _, ok := dependents[e]; ok {
			out = append(out, e)
		}
	}
	sortIDs(out)
	return out
}
