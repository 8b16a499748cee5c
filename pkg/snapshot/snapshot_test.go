package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "version": "1.2.0",
  "jurisdictions": [
    {"id": "jur-fed", "code": "FED", "name": "Federal", "kind": "federal"},
    {"id": "jur-flsd", "code": "FLSD", "name": "Southern District of Florida", "kind": "federal", "parentId": "jur-fed"}
  ],
  "ruleSets": [
    {"id": "rs-frcp", "code": "FRCP", "name": "Federal Rules of Civil Procedure", "jurisdictionId": "jur-fed"},
    {"id": "rs-local-1", "code": "FLSD-LR", "name": "FLSD Local Rules", "jurisdictionId": "jur-flsd", "isLocal": true, "courtType": "district"}
  ],
  "dependencyEdges": [
    {"ruleSetId": "rs-local-1", "requiredRuleSetId": "rs-frcp", "kind": "requires", "priority": 1}
  ]
}`

const sampleYAML = `
version: "1.0.0"
jurisdictions:
  - id: jur-fed
    code: FED
    name: Federal
    kind: federal
ruleSets:
  - id: rs-frcp
    code: FRCP
    name: Federal Rules of Civil Procedure
    jurisdictionId: jur-fed
dependencyEdges: []
`

func TestDecodeJSON(t *testing.T) {
	s, err := DecodeJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	require.Equal(t, "1.2.0", s.Version)
	require.Len(t, s.Jurisdictions, 2)
	require.Len(t, s.RuleSets, 2)
	require.Len(t, s.DependencyEdges, 1)
	require.Empty(t, s.Quarantined)

	require.Equal(t, "FLSD", s.Jurisdictions[1].Code)
	require.True(t, s.RuleSets[1].IsLocal)
	require.Equal(t, 1, s.DependencyEdges[0].Priority)
}

func TestDecodeYAML(t *testing.T) {
	s, err := DecodeYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	require.Equal(t, "1.0.0", s.Version)
	require.Len(t, s.Jurisdictions, 1)
	require.Len(t, s.RuleSets, 1)
	require.Empty(t, s.DependencyEdges)
}

func TestDecodeBuildRoundTrip(t *testing.T) {
	s, err := DecodeJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	g := s.Build()
	require.Len(t, g.Forest, 1)

	rs, ok := g.RuleSet("rs-local-1")
	require.True(t, ok)
	require.True(t, rs.IsLocal)
	require.Equal(t, []string{"rs-frcp"}, idsAsStrings(g.DependencyMap["rs-local-1"]))
}

func TestDecodeRejectsMissingVersion(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"jurisdictions": []}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation")
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"version": "1.0.0", "ruleSets": {"not": "an array"}}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "schema validation")
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{nope`))
	require.Error(t, err)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"version": "2.0.0"}`))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeUnparsableVersion(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"version": "not-a-version"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse version")
}

func TestQuarantineRecordsMissingID(t *testing.T) {
	doc := `{
	  "version": "1.0.0",
	  "jurisdictions": [
	    {"id": "jur-ok", "code": "OK", "name": "Okay"},
	    {"code": "NOID", "name": "No identifier"}
	  ],
	  "ruleSets": [
	    {"code": "ALSO-NOID", "name": "Nameless", "jurisdictionId": "jur-ok"}
	  ],
	  "dependencyEdges": [
	    {"ruleSetId": "rs-a"},
	    {"requiredRuleSetId": "rs-b"}
	  ]
	}`
	s, err := DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, s.Jurisdictions, 1)
	require.Empty(t, s.RuleSets)
	require.Empty(t, s.DependencyEdges)

	require.Len(t, s.Quarantined, 4)
	require.Equal(t, Quarantined{Kind: "jurisdiction", Index: 1, Reason: "missing id"}, s.Quarantined[0])
	require.Equal(t, Quarantined{Kind: "ruleSet", Index: 0, Reason: "missing id"}, s.Quarantined[1])
	require.Equal(t, Quarantined{Kind: "dependencyEdge", Index: 0, Reason: "missing requiredRuleSetId"}, s.Quarantined[2])
	require.Equal(t, Quarantined{Kind: "dependencyEdge", Index: 1, Reason: "missing ruleSetId"}, s.Quarantined[3])
}

func idsAsStrings[T ~string](ids []T) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
