package snapshot

import "github.com/santhosh-tekuri/jsonschema/v5"

// documentSchema validates the structural shape of a snapshot document.
// Record-level id checks are deliberately absent: a record missing its id is
// quarantined individually rather than failing the whole document.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "jurisdictions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "code": {"type": "string"},
          "name": {"type": "string"},
          "kind": {"type": "string"},
          "parentId": {"type": "string"}
        }
      }
    },
    "ruleSets": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string"},
          "code": {"type": "string"},
          "name": {"type": "string"},
          "jurisdictionId": {"type": "string"},
          "isLocal": {"type": "boolean"},
          "courtType": {"type": "string"}
        }
      }
    },
    "dependencyEdges": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "ruleSetId": {"type": "string"},
          "requiredRuleSetId": {"type": "string"},
          "kind": {"type": "string"},
          "priority": {"type": "integer"}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString(
	"https://docketry.schemas.local/snapshot.schema.json", documentSchema)
