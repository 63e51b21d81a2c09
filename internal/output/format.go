package output

import "sync/atomic"

// OutputMode is the global output mode used by convenience helpers.
// Prefer passing an explicit Format/Writer when possible.
type OutputMode string

const (
	OutputModeText OutputMode = "text"
	OutputModeJSON OutputMode = "json"
	OutputModeYAML OutputMode = "yaml"
)

var outputMode atomic.Value

func init() {
	outputMode.Store(OutputModeText)
}

// SetOutputMode sets the global output mode from a format name. Unknown
// names fall back to text.
func SetOutputMode(format string) {
	switch OutputMode(format) {
	case OutputModeJSON:
		outputMode.Store(OutputModeJSON)
	case OutputModeYAML:
		outputMode.Store(OutputModeYAML)
	default:
		outputMode.Store(OutputModeText)
	}
}

// GetOutputMode returns the current global output mode.
func GetOutputMode() OutputMode {
	if v, ok := outputMode.Load().(OutputMode); ok {
		return v
	}
	return OutputModeText
}

// IsJSON returns true if the global output mode is JSON.
func IsJSON() bool {
	return GetOutputMode() == OutputModeJSON
}

// IsStructured returns true when output goes to a machine format.
func IsStructured() bool {
	mode := GetOutputMode()
	return mode == OutputModeJSON || mode == OutputModeYAML
}

// OutputStructured writes v in the current machine format to stdout.
func OutputStructured(v any) error {
	if GetOutputMode() == OutputModeYAML {
		return OutputYAML(v)
	}
	return OutputJSON(v)
}
