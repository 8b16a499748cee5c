package rulegraph

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Build turns flat jurisdiction, rule-set, and dependency-edge records into
// an immutable Graph: a rooted forest of jurisdiction nodes with rule sets as
// leaves, plus the dependency map and its inverse.
//
// Malformed input degrades, never fails: a jurisdiction with an unresolvable
// parent becomes a forest root, a rule set with an unresolvable jurisdiction
// is kept on Graph.Orphans, and a dependency edge with either endpoint
// missing from the rule-set index is ignored. Duplicate ids are
// last-write-wins.
func Build(jurisdictions []JurisdictionRecord, ruleSets []RuleSetRecord, edges []DependencyEdgeRecord) *Graph {
	g := &Graph{
		RuleSetIndex:         make(map[ID]*RuleSet),
		DependencyMap:        make(map[ID][]ID),
		ReverseDependencyMap: make(map[ID][]ID),
		nodes:                make(map[ID]*JurisdictionNode),
	}

	order := make([]ID, 0, len(jurisdictions))
	for _, rec := range jurisdictions {
		if rec.ID == "" {
			continue
		}
		if _, dup := g.nodes[rec.ID]; !dup {
			order = append(order, rec.ID)
		}
		g.nodes[rec.ID] = &JurisdictionNode{
			ID:       rec.ID,
			Code:     rec.Code,
			Name:     rec.Name,
			Kind:     rec.Kind,
			ParentID: rec.ParentID,
		}
	}

	for _, rec := range ruleSets {
		if rec.ID == "" {
			continue
		}
		rs := &RuleSet{
			ID:             rec.ID,
			Code:           rec.Code,
			Name:           rec.Name,
			JurisdictionID: rec.JurisdictionID,
			IsLocal:        rec.IsLocal,
			CourtType:      rec.CourtType,
		}
		g.RuleSetIndex[rs.ID] = rs
	}
	for _, rs := range g.RuleSetIndex {
		if owner, ok := g.nodes[rs.JurisdictionID]; ok {
			owner.RuleSets = append(owner.RuleSets, rs)
		} else {
			g.Orphans = append(g.Orphans, rs)
		}
	}

	for _, e := range edges {
		if _, ok := g.RuleSetIndex[e.RuleSetID]; !ok {
			continue
		}
		if _, ok := g.RuleSetIndex[e.RequiredRuleSetID]; !ok {
			continue
		}
		g.DependencyMap[e.RuleSetID] = append(g.DependencyMap[e.RuleSetID], e.RequiredRuleSetID)
		g.ReverseDependencyMap[e.RequiredRuleSetID] = append(g.ReverseDependencyMap[e.RequiredRuleSetID], e.RuleSetID)
	}

	g.linkParents(order)
	g.sortForest()
	g.assignDepths()
	g.sortOrphans()
	return g
}

// linkParents attaches each node to its parent, promoting nodes with an
// unresolvable parent to forest roots. The jurisdiction input should be a
// forest; a parent cycle is broken deterministically by promoting the first
// cycle member encountered in input order.
func (g *Graph) linkParents(order []ID) {
	for _, id := range order {
		n := g.nodes[id]
		if n.ParentID == "" {
			continue
		}
		if _, ok := g.nodes[n.ParentID]; !ok {
			n.ParentID = ""
			continue
		}
		seen := map[ID]struct{}{id: {}}
		for cur := n.ParentID; cur != ""; {
			if cur == id {
				n.ParentID = ""
				break
			}
			if _, dup := seen[cur]; dup {
				// Cycle among ancestors not containing this node; its
				// first member in input order breaks it on its own turn.
				break
			}
			seen[cur] = struct{}{}
			next, ok := g.nodes[cur]
			if !ok {
				break
			}
			cur = next.ParentID
		}
	}
	for _, id := range order {
		n := g.nodes[id]
		if n.ParentID == "" {
			g.Forest = append(g.Forest, n)
			continue
		}
		parent := g.nodes[n.ParentID]
		parent.Children = append(parent.Children, n)
	}
}

func (g *Graph) sortForest() {
	sortNodes(g.Forest)
	for _, n := range g.nodes {
		sortNodes(n.Children)
		sort.Slice(n.RuleSets, func(i, j int) bool {
			a, b := n.RuleSets[i], n.RuleSets[j]
			if ka, kb := sortKey(a.Code), sortKey(b.Code); ka != kb {
				return ka < kb
			}
			return a.ID < b.ID
		})
	}
}

func sortNodes(nodes []*JurisdictionNode) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if ka, kb := sortKey(a.Name), sortKey(b.Name); ka != kb {
			return ka < kb
		}
		return a.ID < b.ID
	})
}

// sortKey folds a display name into a stable comparison key. NFC
// normalization keeps composed and decomposed forms of the same name from
// sorting apart.
func sortKey(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

func (g *Graph) assignDepths() {
	for _, root := range g.Forest {
		root.Depth = 0
		stack := []*JurisdictionNode{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, c := range n.Children {
				c.Depth = n.Depth + 1
				stack = append(stack, c)
			}
		}
	}
}

func (g *Graph) sortOrphans() {
	sort.Slice(g.Orphans, func(i, j int) bool {
		a, b := g.Orphans[i], g.Orphans[j]
		if ka, kb := sortKey(a.Code), sortKey(b.Code); ka != kb {
			return ka < kb
		}
		return a.ID < b.ID
	})
}
