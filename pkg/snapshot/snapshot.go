// Package snapshot decodes and validates the flat record snapshots the
// selection engine is built from: jurisdiction, rule-set, and dependency-edge
// arrays as served by the docketing API. Fetching is the caller's concern;
// this package only reads from a supplied reader, enforces the document
// schema and format version, and quarantines records missing their id so a
// malformed subset never blocks use of the valid remainder.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/docketry/docketry/pkg/rulegraph"
)

// supportedMajor is the snapshot format major version this package reads.
const supportedMajor = 1

// ErrUnsupportedVersion is returned when a snapshot declares a format version
// outside the supported major.
var ErrUnsupportedVersion = errors.New("snapshot: unsupported format version")

// document is the wire shape of a snapshot.
type document struct {
	Version         string                           `json:"version" yaml:"version"`
	Jurisdictions   []rulegraph.JurisdictionRecord   `json:"jurisdictions" yaml:"jurisdictions"`
	RuleSets        []rulegraph.RuleSetRecord        `json:"ruleSets" yaml:"ruleSets"`
	DependencyEdges []rulegraph.DependencyEdgeRecord `json:"dependencyEdges" yaml:"dependencyEdges"`
}

// Quarantined records a snapshot entry that was withheld from the graph
// builder, with enough context to locate it in the source document.
type Quarantined struct {
	Kind   string `json:"kind"` // "jurisdiction", "ruleSet", or "dependencyEdge"
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Snapshot is a decoded, validated record set ready for the graph builder.
type Snapshot struct {
	Version         string
	Jurisdictions   []rulegraph.JurisdictionRecord
	RuleSets        []rulegraph.RuleSetRecord
	DependencyEdges []rulegraph.DependencyEdgeRecord
	Quarantined     []Quarantined
}

// DecodeJSON reads a JSON snapshot document from r.
func DecodeJSON(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("snapshot: parse json: %w", err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("snapshot: schema validation: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode json: %w", err)
	}
	return fromDocument(&doc)
}

// DecodeYAML reads a YAML snapshot document from r. The document is held to
// the same schema as its JSON form.
func DecodeYAML(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read: %w", err)
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("snapshot: parse yaml: %w", err)
	}
	if err := compiledSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("snapshot: schema validation: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode yaml: %w", err)
	}
	return fromDocument(&doc)
}

func fromDocument(doc *document) (*Snapshot, error) {
	v, err := semver.NewVersion(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parse version %q: %w", doc.Version, err)
	}
	if v.Major() != supportedMajor {
		return nil, fmt.Errorf("%w: got %s, supported major %d",
			ErrUnsupportedVersion, doc.Version, supportedMajor)
	}

	s := &Snapshot{Version: doc.Version}
	for i, rec := range doc.Jurisdictions {
		if rec.ID == "" {
			s.quarantine("jurisdiction", i, "missing id")
			continue
		}
		s.Jurisdictions = append(s.Jurisdictions, rec)
	}
	for i, rec := range doc.RuleSets {
		if rec.ID == "" {
			s.quarantine("ruleSet", i, "missing id")
			continue
		}
		s.RuleSets = append(s.RuleSets, rec)
	}
	for i, rec := range doc.DependencyEdges {
		switch {
		case rec.RuleSetID == "":
			s.quarantine("dependencyEdge", i, "missing ruleSetId")
		case rec.RequiredRuleSetID == "":
			s.quarantine("dependencyEdge", i, "missing requiredRuleSetId")
		default:
			s.DependencyEdges = append(s.DependencyEdges, rec)
		}
	}
	return s, nil
}

func (s *Snapshot) quarantine(kind string, index int, reason string) {
	s.Quarantined = append(s.Quarantined, Quarantined{Kind: kind, Index: index, Reason: reason})
}

// Build constructs the rule graph from the snapshot's validated records.
func (s *Snapshot) Build() *rulegraph.Graph {
	return rulegraph.Build(s.Jurisdictions, s.RuleSets, s.DependencyEdges)
}
