package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConflictExitsBeforeLaunch(t *testing.T) {
	status := run([]string{"-n", "3", "-t", "2"}, os.Stdin, os.Stdout)
	assert.Equal(t, 2, status)
}

func TestRunExtractOnly(t *testing.T) {
	dir := t.TempDir()

	stub := filepath.Join(dir, "extract")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\ncat\n"), 0o755))

	toolchainFile := filepath.Join(dir, "tagwerk.yaml")
	require.NoError(t, os.WriteFile(toolchainFile, []byte("extractor:\n  path: "+stub+"\n"), 0o644))

	inputFile := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(inputFile, []byte("Der\nHund\n"), 0o644))

	outFile, err := os.Create(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	defer outFile.Close()

	status := run([]string{"-e", "--toolchain", toolchainFile, "-i", inputFile}, os.Stdin, outFile)
	assert.Equal(t, 0, status)

	raw, err := os.ReadFile(outFile.Name())
	require.NoError(t, err)
	assert.Equal(t, "Der\nHund\n", string(raw))
}

func TestRunMissingInputFile(t *testing.T) {
	status := run([]string{"-i", filepath.Join(t.TempDir(), "nope.txt")}, os.Stdin, os.Stdout)
	assert.Equal(t, 2, status)
}

func TestLoadToolchainFallsBackToDefaults(t *testing.T) {
	rootDir := t.TempDir()

	toolchain, err := loadToolchain("", rootDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootDir, "preprocess/tokenizer.perl"), toolchain.Tokenizer.Path)
	assert.Equal(t, "wapiti", toolchain.Tagger.Path)
}
