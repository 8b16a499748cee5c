// Package rulegraph models court jurisdictions and the rule sets attached to
// them as a rooted forest, with cross-rule-set requirements forming a directed
// dependency graph. It provides the graph builder, the dependency resolver
// that computes the locked (auto-included) closure of a selection, and the
// advisory validator for selections with missing base rules.
package rulegraph

// ID is an opaque identifier for a jurisdiction or rule set.
type ID string

// JurisdictionKind classifies the level of a jurisdiction node.
type JurisdictionKind string

const (
	KindFederal    JurisdictionKind = "federal"
	KindState      JurisdictionKind = "state"
	KindLocal      JurisdictionKind = "local"
	KindBankruptcy JurisdictionKind = "bankruptcy"
	KindAppellate  JurisdictionKind = "appellate"
)

// JurisdictionRecord is the flat input shape for a jurisdiction, as supplied
// by the caller's data source.
type JurisdictionRecord struct {
	ID       ID               `json:"id" yaml:"id"`
	Code     string           `json:"code" yaml:"code"`
	Name     string           `json:"name" yaml:"name"`
	Kind     JurisdictionKind `json:"kind" yaml:"kind"`
	ParentID ID               `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// RuleSetRecord is the flat input shape for a rule set.
type RuleSetRecord struct {
	ID             ID     `json:"id" yaml:"id"`
	Code           string `json:"code" yaml:"code"`
	Name           string `json:"name" yaml:"name"`
	JurisdictionID ID     `json:"jurisdictionId" yaml:"jurisdictionId"`
	IsLocal        bool   `json:"isLocal" yaml:"isLocal"`
	CourtType      string `json:"courtType,omitempty" yaml:"courtType,omitempty"`
}

// DependencyEdgeRecord is a directed requirement: RuleSetID cannot be
// meaningfully active without RequiredRuleSetID also being active.
type DependencyEdgeRecord struct {
	RuleSetID         ID     `json:"ruleSetId" yaml:"ruleSetId"`
	RequiredRuleSetID ID     `json:"requiredRuleSetId" yaml:"requiredRuleSetId"`
	Kind              string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Priority          int    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// RuleSet is a named bundle of procedural rules belonging to exactly one
// jurisdiction. Local rule sets are expected to layer on top of a base
// (non-local) rule set.
type RuleSet struct {
	ID             ID     `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	JurisdictionID ID     `json:"jurisdictionId"`
	IsLocal        bool   `json:"isLocal"`
	CourtType      string `json:"courtType,omitempty"`
}

// JurisdictionNode is a node in the court hierarchy. Children holds nested
// jurisdictions sorted by name; RuleSets holds the rule sets attached
// directly to this node, sorted by code. Depth is 0 for forest roots.
type JurisdictionNode struct {
	ID       ID                  `json:"id"`
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Kind     JurisdictionKind    `json:"kind"`
	ParentID ID                  `json:"parentId,omitempty"`
	Depth    int                 `json:"depth"`
	Children []*JurisdictionNode `json:"children,omitempty"`
	RuleSets []*RuleSet          `json:"ruleSets,omitempty"`
}

// WarningKind identifies a category of selection warning.
type WarningKind string

// WarningMissingBaseRules fires when an explicitly selected local rule set
// has dependency edges whose targets are in neither the explicit nor the
// locked set.
const WarningMissingBaseRules WarningKind = "missing_base_rules"

// SuggestedActionAutoInclude asks the caller to auto-include the missing ids.
const SuggestedActionAutoInclude = "auto-include"

// Warning is an advisory consistency finding. Warnings never block a
// selection; they are surfaced for human review.
type Warning struct {
	Kind            WarningKind `json:"kind"`
	Message         string      `json:"message"`
	AffectedIDs     []ID        `json:"affectedIds"`
	SuggestedAction string      `json:"suggestedAction"`
}
