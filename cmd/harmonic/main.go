// Command harmonic evaluates one denoising setup: a sinusoid with additive
// Gaussian noise, smoothed by a zero-phase Butterworth low-pass or a moving
// average, and prints statistics of the three traces or the traces as CSV.
//
// Usage:
//
//	harmonic [flags]
//
// Flags override values from the optional YAML preset given with -config.
//
// Examples:
//
//	harmonic
//	harmonic -cutoff 1 -variance 0.5
//	harmonic -filter moving-average -window 20 -format csv > traces.csv
//	harmonic -config preset.yaml -seed 7
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/harmonic-denoise/dsp/filter/lowpass"
	"github.com/cwbudde/harmonic-denoise/dsp/noise"
	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
	"github.com/cwbudde/harmonic-denoise/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("harmonic", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML preset file")
	format := fs.String("format", "table", "output format: table or csv")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	seed := fs.Uint64("seed", 0, "noise seed (random when not set)")
	edge := fs.String("edge", "", "low-pass edge handling: none or odd")
	cascade := fs.Bool("cascade", false, "run the low-pass as second-order sections")

	def := pipeline.DefaultRequest()
	amplitude := fs.Float64("amplitude", def.Amplitude, "harmonic amplitude")
	frequency := fs.Float64("frequency", def.Frequency, "harmonic frequency in Hz")
	phase := fs.Float64("phase", def.Phase, "harmonic phase in radians")
	mean := fs.Float64("mean", def.NoiseMean, "noise mean")
	variance := fs.Float64("variance", def.NoiseVariance, "noise variance")
	filter := fs.String("filter", string(def.FilterKind), "filter: lowpass or moving-average")
	cutoff := fs.Float64("cutoff", def.CutoffFrequency, "low-pass cutoff in Hz")
	window := fs.Int("window", def.WindowWidth, "moving-average window in samples")
	showNoise := fs.Bool("show-noise", def.ShowNoise, "report clean+noise as the noisy trace")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: harmonic [flags]\n\n")
		fmt.Fprintf(stderr, "Evaluates a noisy sinusoid and its filtered reconstruction.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	logger := logging.NewDefaultLogger(stderr)
	logger.SetLevel(level)

	cfg := defaultConfig()
	if *configPath != "" {
		cfg, err = loadConfig(*configPath)
		if err != nil {
			logger.Error(err, "load preset", logging.Fields{"path": *configPath})
			return 1
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	override := func(name string, apply func()) {
		if set[name] {
			apply()
		}
	}
	override("amplitude", func() { cfg.Amplitude = *amplitude })
	override("frequency", func() { cfg.Frequency = *frequency })
	override("phase", func() { cfg.Phase = *phase })
	override("mean", func() { cfg.NoiseMean = *mean })
	override("variance", func() { cfg.NoiseVariance = *variance })
	override("filter", func() { cfg.FilterKind = pipeline.FilterKind(*filter) })
	override("cutoff", func() { cfg.CutoffFrequency = *cutoff })
	override("window", func() { cfg.WindowWidth = *window })
	override("show-noise", func() { cfg.ShowNoise = *showNoise })
	override("seed", func() { cfg.Seed = seed })
	override("edge", func() { cfg.Edge = *edge })
	override("cascade", func() { cfg.Cascade = *cascade })

	if err := evaluate(cfg, *format, stdout, logger); err != nil {
		logger.Error(err, "evaluate")
		return 1
	}
	return 0
}

func evaluate(cfg config, format string, w io.Writer, logger logging.Logger) error {
	if format != "table" && format != "csv" {
		return fmt.Errorf("unknown format %q", format)
	}

	grid, err := cfg.grid()
	if err != nil {
		return err
	}
	edge, err := lowpass.ParseEdgeMode(cfg.Edge)
	if err != nil {
		return err
	}
	kind, err := pipeline.ParseFilterKind(string(cfg.FilterKind))
	if err != nil {
		return err
	}
	cfg.FilterKind = kind

	srcOpts := []noise.Option{noise.WithLogger(logger)}
	if cfg.Seed != nil {
		srcOpts = append(srcOpts, noise.WithSeed(*cfg.Seed))
	}
	pipeOpts := []pipeline.Option{pipeline.WithLogger(logger), pipeline.WithEdge(edge)}
	if cfg.Cascade {
		pipeOpts = append(pipeOpts, pipeline.WithCascade())
	}

	p, err := pipeline.New(grid, noise.NewSource(grid.Len(), srcOpts...), pipeOpts...)
	if err != nil {
		return err
	}
	params, err := cfg.Request.Params()
	if err != nil {
		return err
	}

	logger.Info("evaluating", logging.Fields{
		"filter":      params.Filter.String(),
		"samples":     grid.Len(),
		"sample_rate": grid.SampleRate(),
	})
	res, err := p.Evaluate(params)
	if err != nil {
		return err
	}

	if format == "csv" {
		return writeCSV(w, res)
	}
	return writeTable(w, cfg.Request, res, grid.SampleRate())
}
