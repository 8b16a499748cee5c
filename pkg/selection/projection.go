package selection

import (
	"sort"

	"github.com/docketry/docketry/pkg/rulegraph"
)

// Selection is the read projection of a store, the contract consumed by the
// rendering layer and by downstream rule-application logic. ActiveRuleSetIDs
// is the authoritative, dependency-complete set to apply: explicit ∪ locked,
// restricted to ids that resolve to a rule set.
type Selection struct {
	SessionID             string              `json:"sessionId"`
	GraphFingerprint      string              `json:"graphFingerprint"`
	ExplicitIDs           []rulegraph.ID      `json:"explicitIds"`
	LockedIDs             []rulegraph.ID      `json:"lockedIds"`
	ActiveRuleSetIDs      []rulegraph.ID      `json:"activeRuleSetIds"`
	ActiveRuleSetCodes    []string            `json:"activeRuleSetCodes"`
	PrimaryJurisdictionID rulegraph.ID        `json:"primaryJurisdictionId,omitempty"`
	IsValid               bool                `json:"isValid"`
	Warnings              []rulegraph.Warning `json:"warnings"`
}

// Selection snapshots the current state. Slices are sorted copies; mutating
// them does not affect the store.
func (s *Store) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	explicit := idsOf(s.explicit)
	locked := idsOf(s.locked)

	active := make([]rulegraph.ID, 0, len(explicit)+len(locked))
	for _, id := range explicit {
		if _, ok := s.graph.RuleSet(id); ok {
			active = append(active, id)
		}
	}
	for _, id := range locked {
		if _, ok := s.graph.RuleSet(id); ok {
			active = append(active, id)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })

	codes := make([]string, len(active))
	for i, id := range active {
		rs, _ := s.graph.RuleSet(id)
		codes[i] = rs.Code
	}

	return Selection{
		SessionID:             s.sessionID,
		GraphFingerprint:      s.fingerprint,
		ExplicitIDs:           explicit,
		LockedIDs:             locked,
		ActiveRuleSetIDs:      active,
		ActiveRuleSetCodes:    codes,
		PrimaryJurisdictionID: s.primaryJurisdiction(),
		IsValid:               len(s.warnings) == 0,
		Warnings:              append([]rulegraph.Warning(nil), s.warnings...),
	}
}

// primaryJurisdiction returns the deepest jurisdiction node among the
// explicitly selected ids, for callers that allow selecting jurisdiction
// nodes themselves. Empty when no explicit id is a jurisdiction node. Ties on
// depth break toward the smaller id. Callers hold mu.
func (s *Store) primaryJurisdiction() rulegraph.ID {
	var best *rulegraph.JurisdictionNode
	for _, id := range idsOf(s.explicit) {
		n, ok := s.graph.Node(id)
		if !ok {
			continue
		}
		if best == nil || n.Depth > best.Depth {
			best = n
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func idsOf(set map[rulegraph.ID]struct{}) []rulegraph.ID {
	out := make([]rulegraph.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
