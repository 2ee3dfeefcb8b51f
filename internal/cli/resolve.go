package cli

import (
	"fmt"
	"strings"
)

// splitRef parses a stored-matrix reference of the form "name@version".
func splitRef(ref string) (name, version string, err error) {
	name, version, ok := strings.Cut(ref, "@")
	if !ok || name == "" || version == "" {
		return "", "", fmt.Errorf("invalid matrix reference %q (expected name@version)", ref)
	}
	return name, version, nil
}
