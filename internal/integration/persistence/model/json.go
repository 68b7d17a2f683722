// Package model defines database models for persistence layer.
package model

import "encoding/json"

// encodeAttributes serialises an opaque attribute map into a text column.
func encodeAttributes(attrs map[string]any) string {
	if len(attrs) == 0 {
		return ""
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return ""
	}
	return string(raw)
}

// decodeAttributes is the inverse of encodeAttributes. Malformed text yields nil.
func decodeAttributes(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var attrs map[string]any
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil
	}
	return attrs
}
