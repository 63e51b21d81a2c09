package output

import (
	"os"

	"go.yaml.in/yaml/v3"
)

// OutputYAML writes a YAML document to stdout.
func OutputYAML(v any) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}
