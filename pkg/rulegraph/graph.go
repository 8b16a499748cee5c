package rulegraph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Graph is the immutable output of Build: the jurisdiction forest plus the
// dependency map and its inverse. A fresh Build replaces a Graph wholesale;
// nothing mutates it afterward, so it is safe to share between readers.
type Graph struct {
	Forest               []*JurisdictionNode
	RuleSetIndex         map[ID]*RuleSet
	DependencyMap        map[ID][]ID
	ReverseDependencyMap map[ID][]ID

	// Orphans are rule sets whose jurisdictionId resolved to no node. They
	// stay selectable through RuleSetIndex; they are listed here rather than
	// silently dropped.
	Orphans []*RuleSet

	nodes map[ID]*JurisdictionNode
}

// Node retrieves a jurisdiction node by id.
func (g *Graph) Node(id ID) (*JurisdictionNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// RuleSet retrieves a rule set by id.
func (g *Graph) RuleSet(id ID) (*RuleSet, bool) {
	rs, ok := g.RuleSetIndex[id]
	return rs, ok
}

// Walk visits every node in the forest in pre-order. Returning false from fn
// stops the walk.
func (g *Graph) Walk(fn func(*JurisdictionNode) bool) {
	stack := make([]*JurisdictionNode, len(g.Forest))
	for i := range g.Forest {
		stack[len(g.Forest)-1-i] = g.Forest[i]
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Flatten returns the forest as a flat pre-order sequence of nodes.
func (g *Graph) Flatten() []*JurisdictionNode {
	var out []*JurisdictionNode
	g.Walk(func(n *JurisdictionNode) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Stats returns node, rule-set, and dependency-edge counts.
func (g *Graph) Stats() (nodes, ruleSets, edges int) {
	for _, reqs := range g.DependencyMap {
		edges += len(reqs)
	}
	return len(g.nodes), len(g.RuleSetIndex), edges
}

// Fingerprint returns a deterministic sha256 hex digest of the graph content.
// Two graphs built from the same records (in any input order) share a
// fingerprint; callers use it to detect selections computed against a stale
// graph.
func (g *Graph) Fingerprint() string {
	type edge struct {
		From ID   `json:"from"`
		To   []ID `json:"to"`
	}

	rsIDs := make([]string, 0, len(g.RuleSetIndex))
	for id := range g.RuleSetIndex {
		rsIDs = append(rsIDs, string(id))
	}
	sort.Strings(rsIDs)
	ruleSets := make([]*RuleSet, 0, len(rsIDs))
	for _, id := range rsIDs {
		ruleSets = append(ruleSets, g.RuleSetIndex[ID(id)])
	}

	depIDs := make([]string, 0, len(g.DependencyMap))
	for id := range g.DependencyMap {
		depIDs = append(depIDs, string(id))
	}
	sort.Strings(depIDs)
	edges := make([]edge, 0, len(depIDs))
	for _, id := range depIDs {
		to := append([]ID(nil), g.DependencyMap[ID(id)]...)
		sort.Slice(to, func(i, j int) bool { return to[i] < to[j] })
		edges = append(edges, edge{From: ID(id), To: to})
	}

	content := struct {
		Forest   []*JurisdictionNode `json:"forest"`
		RuleSets []*RuleSet          `json:"ruleSets"`
		Edges    []edge              `json:"edges"`
	}{g.Forest, ruleSets, edges}

	data, err := json.Marshal(content)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
