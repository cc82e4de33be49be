package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// cleanOutput strips whitespace and markdown code fences that completion
// services habitually wrap results in.
func cleanOutput(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// DecodeStringList validates a ShapeStringList response. It accepts either a
// bare JSON array of strings or an object wrapping one array field (the
// service is free to name it, e.g. {"searches": [...]}). Non-string elements
// are dropped; anything else is rejected. An empty list is valid.
func DecodeStringList(raw string) ([]string, error) {
	raw = cleanOutput(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty completion response")
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Not a bare array; try a single-field object wrapper.
		var wrapper map[string][]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &wrapper); err != nil || len(wrapper) != 1 {
			return nil, fmt.Errorf("response is not a list of strings: %.80s", raw)
		}
		for _, v := range wrapper {
			items = v
		}
	}

	list := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

// DecodeBoolFlag validates a ShapeBoolFlag response: either a bare JSON
// boolean or an object with one boolean field (e.g. {"relevant": true}).
func DecodeBoolFlag(raw string) (bool, error) {
	raw = cleanOutput(raw)

	var b bool
	if err := json.Unmarshal([]byte(raw), &b); err == nil {
		return b, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil && len(wrapper) == 1 {
		for _, v := range wrapper {
			if err := json.Unmarshal(v, &b); err == nil {
				return b, nil
			}
		}
	}
	return false, fmt.Errorf("response is not a boolean flag: %.80s", raw)
}
