// Package selection holds the mutable rule-set selection state for one
// docketing session: the explicitly picked rule sets, the locked set derived
// from dependency resolution, expand/collapse bookkeeping for the
// jurisdiction tree, and the advisory warnings for the current state.
//
// The store follows a recompute-on-mutation discipline: after every mutation
// the locked set is fully re-resolved and the warnings re-validated. Public
// operations serialize on an internal mutex, so a store instance behaves as a
// single-writer boundary; there is no finer-grained synchronization.
package selection

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/docketry/docketry/pkg/rulegraph"
)

// Store is the selection state bag. Create one per selection session with
// New; discard it (or Clear it) when the session ends.
type Store struct {
	mu sync.Mutex

	graph       *rulegraph.Graph
	fingerprint string

	explicit map[rulegraph.ID]struct{}
	locked   map[rulegraph.ID]struct{}
	expanded map[rulegraph.ID]struct{}
	warnings []rulegraph.Warning

	sessionID string
	logger    *slog.Logger
}

// New creates an empty store bound to graph.
func New(graph *rulegraph.Graph) *Store {
	s := &Store{
		graph:       graph,
		fingerprint: graph.Fingerprint(),
		explicit:    make(map[rulegraph.ID]struct{}),
		locked:      make(map[rulegraph.ID]struct{}),
		expanded:    make(map[rulegraph.ID]struct{}),
		sessionID:   uuid.New().String(),
		logger:      slog.Default().With("component", "selection"),
	}
	return s
}

// WithLogger overrides the store's logger.
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	s.logger = logger.With("component", "selection")
	return s
}

// Seed replaces the explicit set with ids and recomputes derived state.
// It is SetExplicit under a name that reads better at construction time:
//
//	store := selection.New(graph).Seed(initial...)
func (s *Store) Seed(ids ...rulegraph.ID) *Store {
	s.SetExplicit(ids)
	return s
}

// SessionID returns the uuid assigned to this store instance.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Toggle adds ruleSetID to the explicit set, or removes it if already
// explicit. Toggling an id in the locked set is refused as a no-op: a locked
// id cannot be independently deselected while something explicit still
// requires it. Toggling an id the graph does not know is also a no-op,
// defensive against stale UI references.
func (s *Store) Toggle(id rulegraph.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.explicit[id]; ok {
		delete(s.explicit, id)
		s.recompute("toggle")
		return
	}
	if _, ok := s.locked[id]; ok {
		s.logger.Debug("toggle refused: id is locked",
			"session", s.sessionID, "id", id,
			"required_by", s.graph.RequiredBy(s.explicit, id))
		return
	}
	if !s.known(id) {
		s.logger.Debug("toggle ignored: unknown id", "session", s.sessionID, "id", id)
		return
	}
	s.explicit[id] = struct{}{}
	s.recompute("toggle")
}

// SetExplicit replaces the explicit set wholesale and recomputes derived
// state. Unknown ids are kept as inert opaque entries; they never resolve to
// an active rule set.
func (s *Store) SetExplicit(ids []rulegraph.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.explicit = make(map[rulegraph.ID]struct{}, len(ids))
	for _, id := range ids {
		s.explicit[id] = struct{}{}
	}
	s.recompute("set_explicit")
}

// Clear empties the explicit set and all derived state. Expand/collapse
// state survives a Clear; it is tree bookkeeping, not selection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.explicit = make(map[rulegraph.ID]struct{})
	s.recompute("clear")
}

// Replace swaps in a freshly built graph wholesale and recomputes the locked
// set and warnings against it. The explicit set is kept: ids unknown to the
// new graph simply become inert.
func (s *Store) Replace(graph *rulegraph.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = graph
	s.fingerprint = graph.Fingerprint()
	s.recompute("replace_graph")
}

// recompute re-derives locked and warnings from explicit. Callers hold mu.
func (s *Store) recompute(op string) {
	ctx, span := tracer.Start(context.Background(), "selection.recompute")
	defer span.End()

	s.locked = s.graph.Resolve(s.explicit)
	s.warnings = s.graph.Validate(s.explicit, s.locked)

	recordMutation(ctx, op, len(s.warnings) > 0)
	s.logger.Debug("selection recomputed",
		"session", s.sessionID, "op", op,
		"explicit", len(s.explicit), "locked", len(s.locked),
		"warnings", len(s.warnings))
}

func (s *Store) known(id rulegraph.ID) bool {
	if _, ok := s.graph.RuleSet(id); ok {
		return true
	}
	_, ok := s.graph.Node(id)
	return ok
}

// ToggleExpand flips the expanded flag for a jurisdiction node. Pure UI
// bookkeeping: no selection recomputation.
func (s *Store) ToggleExpand(id rulegraph.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expanded[id]; ok {
		delete(s.expanded, id)
	} else {
		s.expanded[id] = struct{}{}
	}
}

// Expand marks a jurisdiction node expanded.
func (s *Store) Expand(id rulegraph.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[id] = struct{}{}
}

// Collapse marks a jurisdiction node collapsed.
func (s *Store) Collapse(id rulegraph.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expanded, id)
}

// IsExpanded reports whether a jurisdiction node is expanded.
func (s *Store) IsExpanded(id rulegraph.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.expanded[id]
	return ok
}
