package llm

// BuildNarrativeJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We REQUIRE 'summary' and 'results' so the model cannot return
// an empty skeleton; every other section may be omitted and the assembler
// fills it with placeholder copy.
func BuildNarrativeJSONSchema() map[string]any {
	props := map[string]any{
		"summary":         proseProp(),
		"test_conditions": proseProp(),
		"graphs":          proseProp(),
		"results":         proseProp(),
		"detailed_data":   proseProp(),
		"improvements":    proseProp(),
		"highlights": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string", "minLength": 1},
			"maxItems": maxHighlights,
		},
	}

	required := []string{"summary", "results"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func proseProp() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}
