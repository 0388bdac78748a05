package tagger_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagwerk/tagwerk/pkg/pipeline"
	"github.com/tagwerk/tagwerk/pkg/tagger"
)

// writeScript drops an executable shell stub standing in for a
// collaborator binary.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}

func TestRunExtractOnlyStreams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	toolchain := tagger.Toolchain{
		Extractor: tagger.Command{Path: writeScript(t, dir, "extract", "cat")},
	}

	pipe, err := tagger.Assemble(resolve(t, tagger.Options{ExtractOnly: true}), toolchain)
	require.NoError(t, err)

	input := "Der\nHund\nbellt\n\nEr\nschläft\n\n"

	var out bytes.Buffer
	pipe.SetSource(strings.NewReader(input))
	pipe.SetSink(&out)

	require.NoError(t, pipe.Run(context.Background()))

	// the feature stream is the final output
	assert.Equal(t, input, out.String())
	// sentence boundaries survive end-to-end
	assert.Equal(t, strings.Count(input, "\n\n"), strings.Count(out.String(), "\n\n"))
}

func TestRunFullChain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	toolchain := tagger.Toolchain{
		Extractor: tagger.Command{Path: writeScript(t, dir, "extract", "cat")},
		Tagger:    tagger.Command{Path: writeScript(t, dir, "tag", `awk '{ if ($0 == "") print ""; else print $0 "\tNN" }'`)},
		Formatter: tagger.Command{Path: writeScript(t, dir, "format", "cat")},
	}

	pipe, err := tagger.Assemble(resolve(t, tagger.Options{}), toolchain)
	require.NoError(t, err)

	var out bytes.Buffer
	pipe.SetSource(strings.NewReader("Der\nHund\n"))
	pipe.SetSink(&out)

	require.NoError(t, pipe.Run(context.Background()))
	assert.Equal(t, "Der\tNN\nHund\tNN\n", out.String())
}

func TestRunFullChainWithTokenizer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	toolchain := tagger.Toolchain{
		Tokenizer: tagger.Command{Path: writeScript(t, dir, "tokenize", `tr ' ' '\n'`)},
		Extractor: tagger.Command{Path: writeScript(t, dir, "extract", "cat")},
		Tagger:    tagger.Command{Path: writeScript(t, dir, "tag", `awk '{ if ($0 == "") print ""; else print $0 "\tNN" }'`)},
		Formatter: tagger.Command{Path: writeScript(t, dir, "format", "cat")},
	}

	pipe, err := tagger.Assemble(resolve(t, tagger.Options{Tokenize: true}), toolchain)
	require.NoError(t, err)
	require.Equal(t,
		[]string{tagger.TokenizerStage, tagger.ExtractorStage, tagger.TaggerStage, tagger.FormatterStage},
		stageNames(pipe.Stages()))

	var out bytes.Buffer
	pipe.SetSource(strings.NewReader("Der Hund bellt\n"))
	pipe.SetSink(&out)

	require.NoError(t, pipe.Run(context.Background()))
	assert.Equal(t, "Der\tNN\nHund\tNN\nbellt\tNN\n", out.String())
}

func TestRunTaggerFailurePropagates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	toolchain := tagger.Toolchain{
		Extractor: tagger.Command{Path: writeScript(t, dir, "extract", "cat")},
		Tagger:    tagger.Command{Path: writeScript(t, dir, "tag", "exit 5")},
		Formatter: tagger.Command{Path: writeScript(t, dir, "format", "cat")},
	}

	pipe, err := tagger.Assemble(resolve(t, tagger.Options{}), toolchain)
	require.NoError(t, err)

	var out bytes.Buffer
	pipe.SetSource(strings.NewReader("Der\n"))
	pipe.SetSink(&out)

	err = pipe.Run(context.Background())
	require.Error(t, err)

	var stageErr *pipeline.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, tagger.TaggerStage, stageErr.Stage)
	assert.Equal(t, 5, pipeline.ExitStatus(err))
}

func TestConflictLaunchesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	marker := filepath.Join(dir, "launched")
	writeScript(t, dir, "extract", "touch "+marker+"; cat")

	_, err := tagger.Resolve(tagger.Options{NBestSents: 2, NBestTags: 2}, dir)
	require.Error(t, err)

	assert.NoFileExists(t, marker)
}
