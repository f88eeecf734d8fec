package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// ParseManifest returns the model names listed in a manifest, one per line.
// Blank lines and lines starting with '#' are skipped.
func ParseManifest(data []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names
}

// ReadManifest loads and parses the named manifest.
func ReadManifest(m *Manager, name string) ([]string, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	names := ParseManifest(data)
	if len(names) == 0 {
		return nil, fmt.Errorf("manifest %s lists no models", name)
	}
	return names, nil
}
