package tools

// Schema helpers for building JSON Schema definitions.

// ObjectSchema creates an object schema with the given properties.
func ObjectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ObjectProperty creates a nested object property. Unlisted keys are allowed.
func ObjectProperty(description string, properties map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties":  properties,
	}
}

// StringProperty creates a string property with optional description.
func StringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// StringEnumProperty creates a string property with allowed values.
func StringEnumProperty(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
		"enum":        values,
	}
}

// NumberProperty creates a number property with optional description.
func NumberProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

// WithThought returns a copy of schema with an optional "thought" property
// for the agent's reasoning. The original schema is not modified.
func WithThought(schema map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(schema))
	for k, v := range schema {
		result[k] = v
	}

	props := make(map[string]interface{})
	if existing, ok := schema["properties"].(map[string]interface{}); ok {
		for k, v := range existing {
			props[k] = v
		}
	}
	props["thought"] = StringProperty(
		"Your reasoning about why you're using this tool and what you expect to accomplish.",
	)
	result["properties"] = props

	return result
}
