// Package ci integrates with the CI runner's step-output mechanism.
package ci

import (
	"fmt"
	"os"
)

// WriteStepOutputs appends key=value pairs to the file named by the
// GITHUB_OUTPUT environment variable. When the variable is unset (local runs,
// other CI systems) this is a no-op.
func WriteStepOutputs(outputs map[string]string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open step output file: %w", err)
	}
	defer f.Close()
	for k, v := range outputs {
		if _, werr := fmt.Fprintf(f, "%s=%s\n", k, v); werr != nil {
			return fmt.Errorf("write step output %s: %w", k, werr)
		}
	}
	return nil
}
