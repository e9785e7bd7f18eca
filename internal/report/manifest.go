package report

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/cfpstats/internal/utils"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest records one run: what was read and every file written.
type Manifest struct {
	RunID       string    `yaml:"run_id"`
	GeneratedAt time.Time `yaml:"generated_at"`
	Input       string    `yaml:"input"`
	Proposals   int       `yaml:"proposals"`
	Speakers    int       `yaml:"speakers,omitempty"`
	Outputs     []Output  `yaml:"outputs"`
}

func NewManifest(input string, proposals int, outputs []Output) Manifest {
	return Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Input:       input,
		Proposals:   proposals,
		Outputs:     outputs,
	}
}

// Write saves the manifest as YAML.
func (m Manifest) Write(path string) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
