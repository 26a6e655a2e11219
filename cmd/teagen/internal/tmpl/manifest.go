package tmpl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saylorsolutions/teastr/pkg/teastr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultOutput is used when neither a manifest nor the command line names an output file.
	DefaultOutput = "literals_tea.go"
)

var (
	ErrInvalidSeed     = errors.New("invalid seed")
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Manifest describes a set of literals to generate into a single file.
type Manifest struct {
	Package    string            `yaml:"package"`
	Output     string            `yaml:"output"`
	Exposed    bool              `yaml:"exposed"`
	Seed       []uint32          `yaml:"seed"`
	Passphrase string            `yaml:"passphrase"`
	Literals   []ManifestLiteral `yaml:"literals"`

	dir string
}

// ManifestLiteral is a named literal given either as an inline value or a file to read.
// File paths are relative to the manifest.
type ManifestLiteral struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	File  string `yaml:"file"`
}

// LoadManifest reads a YAML Manifest from file.
func LoadManifest(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m := new(Manifest)
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	m.dir = filepath.Dir(file)
	return m, nil
}

// OutputPath returns where the manifest's literals should be generated.
func (m *Manifest) OutputPath() string {
	if len(m.Output) == 0 {
		return filepath.Join(m.dir, DefaultOutput)
	}
	if filepath.IsAbs(m.Output) {
		return m.Output
	}
	return filepath.Join(m.dir, m.Output)
}

// Options translates the Manifest into ParamOpt for GenerateFile.
// Seed positions the manifest leaves out are taken from fallback.
func (m *Manifest) Options(fallback teastr.Seed) ([]ParamOpt, error) {
	opts := []ParamOpt{
		PackageName(m.Package),
		ExposeFunctions(m.Exposed),
	}
	switch {
	case len(m.Seed) > 0:
		seed, err := SeedFromValues(m.Seed, fallback)
		if err != nil {
			return nil, err
		}
		opts = append(opts, UseSeed(seed))
	case len(m.Passphrase) > 0:
		opts = append(opts, UsePassphrase(m.Passphrase))
	}
	for i, lit := range m.Literals {
		switch {
		case len(lit.File) > 0 && len(lit.Value) > 0:
			return nil, fmt.Errorf("%w: literal %d has both a value and a file", ErrInvalidManifest, i)
		case len(lit.File) > 0:
			file := lit.File
			if !filepath.IsAbs(file) {
				file = filepath.Join(m.dir, file)
			}
			if len(lit.Name) == 0 {
				opts = append(opts, AddFileLiteral(file))
				continue
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, err
			}
			opts = append(opts, AddLiteral(lit.Name, string(data)))
		case len(lit.Name) == 0:
			return nil, fmt.Errorf("%w: literal %d has no name", ErrInvalidManifest, i)
		default:
			opts = append(opts, AddLiteral(lit.Name, lit.Value))
		}
	}
	return opts, nil
}

// SeedFromValues creates a Seed from up to 4 values.
// Any position that isn't given keeps its value from fallback, which is usually teastr.DefaultSeed.
func SeedFromValues(vals []uint32, fallback teastr.Seed) (teastr.Seed, error) {
	if len(vals) > 4 {
		return teastr.Seed{}, fmt.Errorf("%w: expected at most 4 values, got %d", ErrInvalidSeed, len(vals))
	}
	padded := [4]uint32{fallback.S1, fallback.S2, fallback.S3, fallback.S4}
	copy(padded[:], vals)
	return teastr.Seed{S1: padded[0], S2: padded[1], S3: padded[2], S4: padded[3]}, nil
}

// ParseSeed parses a comma separated list of up to 4 unsigned 32-bit values.
// Values may be given in decimal, or in hex with a 0x prefix.
// Positions that aren't given are taken from fallback.
func ParseSeed(s string, fallback teastr.Seed) (teastr.Seed, error) {
	var vals []uint32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		val, err := strconv.ParseUint(part, 0, 32)
		if err != nil {
			return teastr.Seed{}, fmt.Errorf("%w: '%s': %v", ErrInvalidSeed, part, err)
		}
		vals = append(vals, uint32(val))
	}
	return SeedFromValues(vals, fallback)
}
