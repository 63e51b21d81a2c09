package output

import (
	"encoding/json"
	"os"
)

// ErrorPayload is the JSON shape for command failures, so scripts parsing
// structured output never have to scrape stderr.
type ErrorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// OutputJSON writes pretty-printed JSON to stdout.
func OutputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// OutputJSONError writes a failure as an ErrorPayload. The exit code the
// process will return is carried in details.
func OutputJSONError(err error, code int) error {
	return OutputJSON(ErrorPayload{
		Error:   "error",
		Message: err.Error(),
		Details: map[string]any{"code": code},
	})
}
