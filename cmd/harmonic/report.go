package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/harmonic-denoise/dsp/filter/lowpass"
	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
	"github.com/cwbudde/harmonic-denoise/stats/frequency"
	timestats "github.com/cwbudde/harmonic-denoise/stats/time"
)

const (
	// welchSegment is the Welch segment length used for the band split.
	welchSegment = 256

	// settleTol and settleLimit bound the impulse-response settling search.
	settleTol   = 1e-6
	settleLimit = 1 << 14
)

// traceRow is one line of the statistics table.
type traceRow struct {
	name      string
	stats     timestats.Stats
	peakHz    float64
	highShare float64
}

// splitHz returns the frequency at which the report splits the spectrum
// into signal and noise bands.
func splitHz(r pipeline.Request) float64 {
	if r.FilterKind == pipeline.FilterLowpass {
		return r.CutoffFrequency
	}
	return 2 * r.Frequency
}

func analyzeTrace(name string, x []float64, fs, split float64) (traceRow, error) {
	sp, err := frequency.Magnitude(x, fs)
	if err != nil {
		return traceRow{}, err
	}
	row := traceRow{
		name:   name,
		stats:  timestats.Calculate(x),
		peakHz: sp.DominantFrequency(),
	}

	seg := min(welchSegment, len(x)-len(x)%2)
	psd, err := frequency.Welch(x, fs, seg)
	if err != nil {
		return traceRow{}, err
	}
	row.highShare = psd.FractionAbove(split)
	return row, nil
}

func writeTable(w io.Writer, r pipeline.Request, res pipeline.Result, fs float64) error {
	split := splitHz(r)

	rows := make([]traceRow, 0, 3)
	for _, tr := range []struct {
		name string
		x    []float64
	}{
		{"clean", res.Clean},
		{"noisy", res.Noisy},
		{"filtered", res.Filtered},
	} {
		row, err := analyzeTrace(tr.name, tr.x, fs, split)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", tr.name, err)
		}
		rows = append(rows, row)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Trace\tMean\tStd\tRMS\tPeak-Peak\tPeak [Hz]\tPower > %.2f Hz\n", split)
	fmt.Fprintf(tw, "-----\t----\t---\t---\t---------\t---------\t--------------\n")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.3f\t%.1f%%\n",
			row.name,
			row.stats.Mean,
			row.stats.StdDev,
			row.stats.RMS,
			row.stats.PeakToPeak,
			row.peakHz,
			100*row.highShare,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	skip := min(50, (len(res.Clean)-1)/2)
	cmp, err := timestats.Compare(res.Clean, res.Filtered, skip)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nfiltered vs clean (%d edge samples skipped): rmse=%.4f max=%.4f snr=%.2f dB corr=%.4f\n",
		skip, cmp.RMSE, cmp.MaxAbsError, cmp.SNR_dB, cmp.Correlation)

	if r.FilterKind == pipeline.FilterLowpass {
		c, err := lowpass.Design(r.CutoffFrequency, fs)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "butterworth order %d, fs=%.3f Hz, wn=%.5f\n", c.Order(), fs, c.NormalizedCutoff())
		fmt.Fprintf(w, "  b = %v\n  a = %v\n", c.B, c.A)
		settle := c.SettleLength(settleTol, settleLimit)
		fmt.Fprintf(w, "  impulse response settles within %d samples (%.2f s)\n", settle, float64(settle)/fs)
	}
	_, err = fmt.Fprintf(w, "filter: %s, show noise: %t\n", r.FilterKind, r.ShowNoise)
	return err
}

func writeCSV(w io.Writer, res pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "clean", "noisy", "filtered"}); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range res.Time {
		if err := cw.Write([]string{f(res.Time[i]), f(res.Clean[i]), f(res.Noisy[i]), f(res.Filtered[i])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
