package tagger

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/tagwerk/tagwerk/pkg/pipeline"
	"github.com/tagwerk/tagwerk/pkg/pipeline/model"
)

// Stage names, as they appear in error messages and drawings.
const (
	TokenizerStage = "tokenizer"
	ExtractorStage = "extract-features"
	TaggerStage    = "tag"
	FormatterStage = "format-output"
)

// Assemble builds the ordered stage chain for cfg without starting any
// process.
//
// The selection is deterministic. Tokenization is prepended on request;
// feature extraction always runs. In extraction-only mode the feature
// stream is the final output and no further stage is appended. Otherwise
// the CRF tagger follows, asked for per-token alternatives (-v 2) or for
// n best sentence analyses (-n N) but never both, and the formatter
// re-renders its raw output knowing how many tags per token to expect.
//
// Sentence boundaries (blank lines) pass through every stage unchanged,
// so downstream collaborators can re-synchronise analyses with their
// source tokens.
func Assemble(cfg *Config, toolchain Toolchain, opts ...model.PipelineOption) (*pipeline.Pipeline, error) {
	pipe, err := pipeline.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	if cfg.Tokenize {
		err = pipe.Append(stage(TokenizerStage, toolchain.Tokenizer))
		if err != nil {
			return nil, errors.Wrap(err, "unable to add tokenizer stage")
		}
	}

	err = pipe.Append(stage(ExtractorStage, toolchain.Extractor))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add feature extraction stage")
	}

	if cfg.ExtractOnly {
		return pipe, nil
	}

	tagArgs := []string{"-m", cfg.Model}
	switch {
	case cfg.NBestTags > 1:
		tagArgs = append(tagArgs, "-v", "2")
	case cfg.NBestSents > 1:
		tagArgs = append(tagArgs, "-n", strconv.Itoa(cfg.NBestSents))
	}

	err = pipe.Append(stage(TaggerStage, toolchain.Tagger, tagArgs...))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add tagging stage")
	}

	err = pipe.Append(stage(FormatterStage, toolchain.Formatter, strconv.Itoa(cfg.NBestTags)))
	if err != nil {
		return nil, errors.Wrap(err, "unable to add formatting stage")
	}

	return pipe, nil
}

func stage(name string, cmd Command, extra ...string) *pipeline.Stage {
	args := make([]string, 0, len(cmd.Args)+len(extra))
	args = append(args, cmd.Args...)
	args = append(args, extra...)

	return pipeline.NewStage(name, cmd.Path, args...)
}
