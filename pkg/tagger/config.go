package tagger

import (
	"path/filepath"

	"github.com/tagwerk/tagwerk/pkg/pipeline"
)

// DefaultModel is the model file used when none is given, relative to the
// install directory.
const DefaultModel = "model/wapiti.model"

// Options is the raw configuration as it arrives from the command line.
type Options struct {
	ExtractOnly bool
	Tokenize    bool
	Input       string // "" reads standard input
	Model       string // "" falls back to DefaultModel
	NBestSents  int
	NBestTags   int
}

// Config is the validated, immutable pipeline configuration.
type Config struct {
	ExtractOnly bool
	Tokenize    bool
	Input       string
	Model       string // always absolute
	NBestSents  int
	NBestTags   int
}

// constraints enumerates the rejected option combinations. A new mode
// adds a pair here instead of a branch in the assembler.
var constraints = []struct {
	violated func(Options) bool
	reason   string
}{
	{
		violated: func(o Options) bool { return o.NBestSents > 1 && o.NBestTags > 1 },
		reason:   "n-best sentence analyses and n-best tags per token are mutually exclusive",
	},
	{
		violated: func(o Options) bool { return o.NBestSents < 1 },
		reason:   "number of sentence analyses must be at least 1",
	},
	{
		violated: func(o Options) bool { return o.NBestTags < 1 },
		reason:   "number of tags per token must be at least 1",
	},
}

// Resolve validates opts into a Config or fails with a ConfigError before
// any stage starts. Relative model paths are anchored at rootDir, the
// coordinator's install location, so the tool is runnable from any
// directory. Resolve has no side effects.
func Resolve(opts Options, rootDir string) (*Config, error) {
	if opts.NBestSents == 0 {
		opts.NBestSents = 1
	}
	if opts.NBestTags == 0 {
		opts.NBestTags = 1
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	for _, constr := range constraints {
		if constr.violated(opts) {
			return nil, pipeline.NewConfigError("%s", constr.reason)
		}
	}

	modelPath := opts.Model
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(rootDir, modelPath)
	}

	return &Config{
		ExtractOnly: opts.ExtractOnly,
		Tokenize:    opts.Tokenize,
		Input:       opts.Input,
		Model:       modelPath,
		NBestSents:  opts.NBestSents,
		NBestTags:   opts.NBestTags,
	}, nil
}
