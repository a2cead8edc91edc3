// Package driver loads run manifests and parsed programs for the CLI. The
// execution core never sees source text: programs arrive as position-tagged
// trees serialized by an external parser.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file the CLI looks for when invoked without an
// explicit program path.
const ManifestName = "balloon.yml"

// Manifest is the parsed contents of balloon.yml.
type Manifest struct {
	Path    string
	Name    string
	Version string
	Entry   string
	Check   bool
}

type rawManifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Entry   string `yaml:"entry"`
	Check   *bool  `yaml:"check"`
}

// ValidationError aggregates every manifest validation failure into one
// error.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses and validates a balloon.yml file. Entry is resolved
// relative to the manifest's directory; Check defaults to true.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", absPath, err)
	}
	var raw rawManifest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	var issues []string
	if strings.TrimSpace(raw.Name) == "" {
		issues = append(issues, "name is required")
	}
	if strings.TrimSpace(raw.Entry) == "" {
		issues = append(issues, "entry is required")
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	check := true
	if raw.Check != nil {
		check = *raw.Check
	}
	entry := raw.Entry
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(filepath.Dir(absPath), entry)
	}
	return &Manifest{
		Path:    absPath,
		Name:    raw.Name,
		Version: raw.Version,
		Entry:   entry,
		Check:   check,
	}, nil
}
