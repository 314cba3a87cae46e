package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// learnerSchema is the JSON Schema the persisted learner document must
// satisfy. It guards the shape of the record ledger; domain invariants
// (score ranges, window sizes) are enforced by the packages that write
// the fields.
const learnerSchema = `{
	"type": "object",
	"required": ["id", "profile", "concepts", "created_at", "updated_at"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"profile": {
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"interests": {"type": "array", "items": {"type": "string"}},
				"learning_style": {"type": "string"},
				"prior_knowledge": {"type": "string"}
			}
		},
		"current_course": {"type": "string"},
		"current_concept": {"type": "string"},
		"practice_mode": {"type": "boolean"},
		"concepts": {
			"type": ["object", "null"],
			"additionalProperties": {
				"type": "object",
				"required": ["mastery_score", "completed"],
				"properties": {
					"assessments": {
						"type": ["array", "null"],
						"items": {
							"type": "object",
							"required": ["timestamp", "question_type", "correct", "score"],
							"properties": {
								"question_type": {
									"enum": ["multiple-choice", "fill-blank", "dialogue"]
								},
								"correct": {"type": "boolean"},
								"score": {"type": "number", "minimum": 0, "maximum": 1},
								"confidence": {"type": "integer", "minimum": 1, "maximum": 4},
								"calibration_error": {"type": "integer"}
							}
						}
					},
					"mastery_score": {"type": "number", "minimum": 0, "maximum": 1},
					"completed": {"type": "boolean"},
					"review_data": {
						"type": ["object", "null"],
						"required": ["interval", "repetitions", "ease_factor"],
						"properties": {
							"interval": {"type": "integer", "minimum": 1},
							"repetitions": {"type": "integer", "minimum": 0},
							"ease_factor": {"type": "number", "minimum": 1.3, "maximum": 2.5}
						}
					}
				}
			}
		},
		"question_history": {
			"type": ["array", "null"],
			"maxItems": 10
		}
	}
}`

var (
	learnerSchemaOnce     sync.Once
	learnerSchemaCompiled *jsonschema.Schema
	learnerSchemaErr      error
)

// validateLearnerDocument checks a serialized learner model against the
// learner schema.
func validateLearnerDocument(doc []byte) error {
	learnerSchemaOnce.Do(compileLearnerSchema)
	if learnerSchemaErr != nil {
		return fmt.Errorf("compile learner schema: %w", learnerSchemaErr)
	}

	var parsed any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := learnerSchemaCompiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileLearnerSchema() {
	var parsed any
	if err := json.Unmarshal([]byte(learnerSchema), &parsed); err != nil {
		learnerSchemaErr = err
		return
	}

	c := jsonschema.NewCompiler()
	const url = "schema://learner_model.json"
	if err := c.AddResource(url, parsed); err != nil {
		learnerSchemaErr = err
		return
	}
	learnerSchemaCompiled, learnerSchemaErr = c.Compile(url)
}
