package rulegraph

import (
	"fmt"
	"sort"
	"strings"
)

// Validate inspects a selection for local rule sets whose required base rules
// are absent from both the explicit and locked sets, and emits one advisory
// Warning per affected rule set.
//
// After a fresh Resolve against the same dependency map, every dependency of
// an explicit id is in the locked set and no warning can fire; a warning here
// means the graph data itself is incomplete (an expected base rule has no
// recorded edge target in the selection) or the caller validated against a
// stale locked set. Warnings are advisory and never block the selection.
func Validate(explicit, locked map[ID]struct{}, index map[ID]*RuleSet, deps map[ID][]ID) []Warning {
	ids := make([]ID, 0, len(explicit))
	for id := range explicit {
		ids = append(ids, id)
	}
	sortIDs(ids)

	var warnings []Warning
	for _, id := range ids {
		rs, ok := index[id]
		if !ok || !rs.IsLocal {
			continue
		}
		reqs := deps[id]
		if len(reqs) == 0 {
			continue
		}

		var missing []ID
		seen := make(map[ID]struct{}, len(reqs))
		for _, req := range reqs {
			if _, dup := seen[req]; dup {
				continue
			}
			seen[req] = struct{}{}
			if _, ok := explicit[req]; ok {
				continue
			}
			if _, ok := locked[req]; ok {
				continue
			}
			missing = append(missing, req)
		}
		if len(missing) == 0 {
			continue
		}
		sortIDs(missing)

		warnings = append(warnings, Warning{
			Kind:            WarningMissingBaseRules,
			Message:         missingBaseMessage(rs, missing, index),
			AffectedIDs:     missing,
			SuggestedAction: SuggestedActionAutoInclude,
		})
	}
	return warnings
}

// Validate runs the missing-base-rules check against this graph. Beyond the
// edge-based check, it covers the data-omission case: an explicit local rule
// set with no recorded dependency edges at all is checked against the
// non-local rule sets of its jurisdiction chain, and warns when none of those
// inferred base candidates is selected. That is the path that fires when the
// graph data is incomplete rather than when resolver and validator disagree.
func (g *Graph) Validate(explicit, locked map[ID]struct{}) []Warning {
	warnings := Validate(explicit, locked, g.RuleSetIndex, g.DependencyMap)

	ids := make([]ID, 0, len(explicit))
	for id := range explicit {
		ids = append(ids, id)
	}
	sortIDs(ids)

	for _, id := range ids {
		rs, ok := g.RuleSetIndex[id]
		if !ok || !rs.IsLocal || len(g.DependencyMap[id]) > 0 {
			continue
		}
		candidates := g.baseCandidates(rs)
		if len(candidates) == 0 {
			continue
		}
		selected := false
		for _, cand := range candidates {
			if _, ok := explicit[cand]; ok {
				selected = true
				break
			}
			if _, ok := locked[cand]; ok {
				selected = true
				break
			}
		}
		if selected {
			continue
		}
		warnings = append(warnings, Warning{
			Kind:            WarningMissingBaseRules,
			Message:         missingBaseMessage(rs, candidates, g.RuleSetIndex),
			AffectedIDs:     candidates,
			SuggestedAction: SuggestedActionAutoInclude,
		})
	}
	return warnings
}

// baseCandidates returns the non-local rule sets attached to rs's own
// jurisdiction and its ancestors — the rule sets a local rule set is expected
// to layer on when no dependency edge says so explicitly.
func (g *Graph) baseCandidates(rs *RuleSet) []ID {
	var out []ID
	node, ok := g.nodes[rs.JurisdictionID]
	for ok {
		for _, cand := range node.RuleSets {
			if !cand.IsLocal && cand.ID != rs.ID {
				out = append(out, cand.ID)
			}
		}
		if node.ParentID == "" {
			break
		}
		node, ok = g.nodes[node.ParentID]
	}
	sortIDs(out)
	return out
}

func missingBaseMessage(rs *RuleSet, missing []ID, index map[ID]*RuleSet) string {
	labels := make([]string, len(missing))
	for i, id := range missing {
		if req, ok := index[id]; ok && req.Code != "" {
			labels[i] = req.Code
		} else {
			labels[i] = string(id)
		}
	}
	return fmt.Sprintf("local rule set %s requires base rules that are not selected: %s",
		rs.Code, strings.Join(labels, ", "))
}

func sortIDs(ids []ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
