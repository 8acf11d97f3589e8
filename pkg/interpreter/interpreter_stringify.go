package interpreter

import (
	"strings"

	"dolphin/interpreter-go/pkg/runtime"
)

func valueToString(val runtime.Value) string {
	if val == nil {
		return runtime.VoidValue{}.String()
	}
	return val.String()
}

// formatLine renders print arguments space-joined.
func formatLine(values []runtime.Value) string {
	parts := make([]string, len(values))
	for idx, v := range values {
		parts[idx] = valueToString(v)
	}
	return strings.Join(parts, " ")
}
