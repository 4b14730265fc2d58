package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const ManifestFile = "manifest.yaml"

var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Lumos-Labs-HQ/synthgen"))

// Manifest describes one run's artifacts to downstream loaders.
type Manifest struct {
	RunID          string     `yaml:"run_id"`
	Seed           int64      `yaml:"seed"`
	AsOf           string     `yaml:"as_of"`
	Format         string     `yaml:"format"`
	NullMarker     string     `yaml:"null_marker"`
	Artifacts      []Artifact `yaml:"artifacts"`
	WeakReferences []string   `yaml:"weak_references"`
}

type Artifact struct {
	Name    string   `yaml:"name"`
	File    string   `yaml:"file"`
	Rows    int      `yaml:"rows"`
	Columns []string `yaml:"columns,flow"`
}

// RunID derives a stable identifier from whatever defines a run, so the same
// inputs always name the same dataset.
func RunID(parts ...string) string {
	return uuid.NewSHA1(runNamespace, []byte(strings.Join(parts, "|"))).String()
}

// Artifact looks up an artifact by entity name.
func (m *Manifest) Artifact(name string) (Artifact, bool) {
	for _, a := range m.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}
