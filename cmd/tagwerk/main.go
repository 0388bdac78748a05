package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"

	"github.com/tagwerk/tagwerk/pkg/pipeline"
	"github.com/tagwerk/tagwerk/pkg/pipeline/drawer"
	"github.com/tagwerk/tagwerk/pkg/pipeline/measure"
	"github.com/tagwerk/tagwerk/pkg/pipeline/model"
	"github.com/tagwerk/tagwerk/pkg/tagger"
)

// Toolchain file looked up next to the binary when --toolchain is not
// given.
const defaultToolchainFile = "tagwerk.yaml"

var logger = log.New(os.Stderr, "tagwerk: ", 0)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin *os.File, stdout *os.File) int {
	flags := flag.NewFlagSet("tagwerk", flag.ExitOnError)

	var opts tagger.Options
	flags.BoolVar(&opts.ExtractOnly, "e", false, "extract features only, no tagging")
	flags.StringVar(&opts.Input, "i", "", "input file (default: standard input)")
	flags.StringVar(&opts.Input, "input", "", "input file (default: standard input)")
	flags.StringVar(&opts.Model, "m", "", "model file (default: "+tagger.DefaultModel+" in the install directory)")
	flags.StringVar(&opts.Model, "model", "", "model file (default: "+tagger.DefaultModel+" in the install directory)")
	flags.IntVar(&opts.NBestSents, "n", 1, "output the n best sentence analyses")
	flags.IntVar(&opts.NBestSents, "nbestsents", 1, "output the n best sentence analyses")
	flags.IntVar(&opts.NBestTags, "t", 1, "output the n best tags per token")
	flags.IntVar(&opts.NBestTags, "nbesttags", 1, "output the n best tags per token")
	flags.BoolVar(&opts.Tokenize, "tokenize", false, "run the tokenizer on raw text first")

	var (
		toolchainFile = flags.String("toolchain", "", "toolchain file naming the collaborator executables")
		drawFile      = flags.String("draw", "", "write the stage graph to this file (Graphviz DOT)")
		measureRun    = flags.Bool("measure", false, "print per-stage wall-clock times to standard error")
		timeout       = flags.Duration("timeout", 0, "abort the whole pipeline after this duration (default: no timeout)")
	)

	_ = flags.Parse(args) // flag.ExitOnError

	rootDir, err := installDir()
	if err != nil {
		logger.Println(err)

		return pipeline.ExitStatus(err)
	}

	toolchain, err := loadToolchain(*toolchainFile, rootDir)
	if err != nil {
		logger.Println(err)

		return pipeline.ExitStatus(err)
	}

	cfg, err := tagger.Resolve(opts, rootDir)
	if err != nil {
		logger.Println(err)

		return pipeline.ExitStatus(err)
	}

	var popts []model.PipelineOption
	var msr measure.Measure
	if *measureRun || *drawFile != "" {
		msr = measure.NewDefaultMeasure()
		popts = append(popts, measure.PipelineMeasure(msr))
	}
	if *drawFile != "" {
		popts = append(popts, drawer.PipelineDrawer(drawer.NewDOTDrawer(*drawFile), msr))
	}

	pipe, err := tagger.Assemble(cfg, toolchain, popts...)
	if err != nil {
		logger.Println(err)

		return pipeline.ExitStatus(err)
	}

	pipe.SetSource(stdin)
	pipe.SetSink(stdout)

	if cfg.Input != "" {
		input, err := os.Open(cfg.Input)
		if err != nil {
			confErr := pipeline.NewConfigError("unable to read input file %s: %v", cfg.Input, err)
			logger.Println(confErr)

			return pipeline.ExitStatus(confErr)
		}
		defer input.Close()
		pipe.SetSource(input)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	err = pipe.Run(ctx)
	if err != nil {
		logger.Println(err)

		return pipeline.ExitStatus(err)
	}

	if *measureRun {
		err = measure.WriteSummary(os.Stderr, msr)
		if err != nil {
			logger.Println(err)

			return pipeline.ExitStatus(err)
		}
	}

	return 0
}

// installDir locates the directory the coordinator is installed in, which
// anchors relative model and collaborator paths.
func installDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "unable to locate the install directory")
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve the install directory")
	}

	return filepath.Dir(exe), nil
}

func loadToolchain(path, rootDir string) (tagger.Toolchain, error) {
	if path == "" {
		path = filepath.Join(rootDir, defaultToolchainFile)
		if _, err := os.Stat(path); err != nil {
			return tagger.DefaultToolchain().Anchor(rootDir), nil
		}
	}

	toolchain, err := tagger.LoadToolchain(path)
	if err != nil {
		return toolchain, err
	}

	return toolchain.Anchor(rootDir), nil
}
