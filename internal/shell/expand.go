package shell

import (
	"fmt"
	"os"
	"strings"
)

// ExpandHome expands a leading "~" and $VAR / ${VAR} references in input.
func ExpandHome(input string) (string, error) {
	result := input

	if result == "~" || strings.HasPrefix(result, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %q: %w", input, err)
		}
		result = home + result[1:]
	}

	if strings.Count(result, "${") > strings.Count(result, "}") {
		return "", fmt.Errorf("unclosed variable brace in input: %s", input)
	}
	return os.ExpandEnv(result), nil
}
