package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"wrapgen/internal/diag"
	"wrapgen/internal/driver"
	"wrapgen/internal/gencache"
	"wrapgen/internal/observ"
)

var genCmd = &cobra.Command{
	Use:   "gen [manifest]",
	Short: "Generate dispatch guards for every overload set in a manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGen,
}

func init() {
	genCmd.Flags().String("backend", "", "override [generate].backend (cython|python)")
	genCmd.Flags().Int("indent", 0, "override [generate].indent (0 keeps the manifest value)")
	genCmd.Flags().StringP("output", "o", "", "output file (- for stdout); overrides [generate].output")
	genCmd.Flags().Int("jobs", 0, "max parallel renders (0 = manifest or unlimited)")
	genCmd.Flags().Bool("no-cache", false, "ignore the fragment cache")
	genCmd.Flags().String("cache-dir", "", "fragment cache directory (default $XDG_CACHE_HOME/wrapgen)")
}

func runGen(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	m, err := loadManifest(args)
	if err != nil {
		return reportFailure(cmd, manifestSubject(args), err, colored)
	}

	opts := driver.Options{Timer: observ.NewTimer()}
	if opts.Backend, err = cmd.Flags().GetString("backend"); err != nil {
		return err
	}
	if opts.Indent, err = cmd.Flags().GetInt("indent"); err != nil {
		return err
	}
	if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	if m.Generate.Cache && !noCache {
		cacheDir, derr := cmd.Flags().GetString("cache-dir")
		if derr != nil {
			return derr
		}
		if opts.Cache, err = gencache.Open(cacheDir); err != nil {
			return reportFailure(cmd, cacheDir, diag.Errorf(diag.EmtCacheError, cacheDir, "%v", err), colored)
		}
	}
	bag := diag.NewBag(maxDiags)
	opts.Reporter = diag.BagReporter{Bag: bag}

	res, err := driver.Generate(cmd.Context(), m, opts)
	if err != nil {
		return reportFailure(cmd, m.Path, err, colored)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = m.Generate.Output
		if output != "" && !filepath.IsAbs(output) && m.Root != "" {
			output = filepath.Join(m.Root, output)
		}
	}
	if output == "" || output == "-" {
		fmt.Fprint(cmd.OutOrStdout(), res.Text)
	} else if err := driver.WriteOutput(output, res.Text); err != nil {
		return reportFailure(cmd, output, err, colored)
	}

	if bag.Len() > 0 {
		diag.Print(cmd.ErrOrStderr(), bag.Items(), colored)
	}
	if !quiet && output != "" && output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d overload set(s) to %s (%s, %d cached)\n",
			len(res.Units), output, res.Backend, res.CacheHits)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	return nil
}

// reportFailure prints err once as a diagnostic about subject. The returned
// error only carries the exit status; main does not print it again.
func reportFailure(cmd *cobra.Command, subject string, err error, colored bool) error {
	d := diag.FromError(subject, err)
	diag.Print(cmd.ErrOrStderr(), []diag.Diagnostic{d}, colored)
	return reportedError{err}
}

type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }
