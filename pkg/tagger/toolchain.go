package tagger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Command is one collaborator invocation: an executable and the base
// arguments it always receives.
type Command struct {
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// Toolchain names the external collaborators the pipeline is built from.
type Toolchain struct {
	Tokenizer Command `yaml:"tokenizer"`
	Extractor Command `yaml:"extractor"`
	Tagger    Command `yaml:"tagger"`
	Formatter Command `yaml:"formatter"`
}

// DefaultToolchain mirrors the layout the tagger ships with: a perl
// sentence segmenter fixed to German, the feature extractor, wapiti as
// the CRF decoder, and the output formatter.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Tokenizer: Command{Path: "preprocess/tokenizer.perl", Args: []string{"-l", "de"}},
		Extractor: Command{Path: "scripts/extract_features.py"},
		Tagger:    Command{Path: "wapiti", Args: []string{"label"}},
		Formatter: Command{Path: "scripts/format_output.py"},
	}
}

// LoadToolchain reads a toolchain file. Collaborators left out of the
// file keep their defaults.
func LoadToolchain(path string) (Toolchain, error) {
	toolchain := DefaultToolchain()

	raw, err := os.ReadFile(path)
	if err != nil {
		return toolchain, errors.Wrapf(err, "unable to read toolchain file %s", path)
	}

	err = yaml.Unmarshal(raw, &toolchain)
	if err != nil {
		return toolchain, errors.Wrapf(err, "unable to parse toolchain file %s", path)
	}

	return toolchain, nil
}

// Anchor resolves every relative collaborator path against rootDir. Bare
// command names carry no separator and stay as they are; the OS resolves
// them through PATH.
func (t Toolchain) Anchor(rootDir string) Toolchain {
	t.Tokenizer.Path = anchor(t.Tokenizer.Path, rootDir)
	t.Extractor.Path = anchor(t.Extractor.Path, rootDir)
	t.Tagger.Path = anchor(t.Tagger.Path, rootDir)
	t.Formatter.Path = anchor(t.Formatter.Path, rootDir)

	return t
}

func anchor(path, rootDir string) string {
	if path == "" || filepath.IsAbs(path) || !strings.ContainsRune(path, filepath.Separator) {
		return path
	}

	return filepath.Join(rootDir, path)
}
