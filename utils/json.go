package utils

import (
	json "github.com/bytedance/sonic"
)

// JsonString renders obj as compact JSON, swallowing marshal errors; meant
// for log lines, not persistence.
func JsonString(obj any) string {
	jsonStr, _ := json.Marshal(obj)
	return string(jsonStr)
}

// JsonIndent renders obj as two-space indented JSON.
func JsonIndent(obj any) string {
	jsonStr, _ := json.MarshalIndent(obj, "", "  ")
	return string(jsonStr)
}
