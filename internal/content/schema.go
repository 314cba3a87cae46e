package content

// ContentSchema is the JSON Schema every generated content blob must
// conform to. The engine treats the blob as opaque; the schema exists so
// malformed provider output is rejected at the collaborator boundary.
var ContentSchema = &Schema{
	Name:        "course-content",
	Description: "One unit of adaptive course content with a follow-up question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "Stage-appropriate teaching text. May be empty for plain practice.",
			},
			"question": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"scenario": map[string]any{
						"type":        "string",
						"description": "Optional framing for the question.",
					},
					"text": map[string]any{
						"type": "string",
					},
					"question_type": map[string]any{
						"type": "string",
						"enum": []any{"multiple-choice", "fill-blank", "dialogue"},
					},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"correct_answer": map[string]any{
						"type": "string",
					},
				},
				"required":             []any{"text", "question_type", "correct_answer"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}
