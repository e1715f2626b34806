package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wrapgen/internal/diag"
	"wrapgen/internal/diagfmt"
	"wrapgen/internal/driver"
	"wrapgen/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [manifest]",
	Short: "Verify argument types and report ambiguous overload sets",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false, "treat ambiguity warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel template expansions (0 = unlimited)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	m, err := loadManifest(args)
	if err != nil {
		return reportFailure(cmd, manifestSubject(args), err, colored)
	}
	res, err := driver.Check(cmd.Context(), m, jobs, maxDiags)
	if err != nil {
		return reportFailure(cmd, m.Path, err, colored)
	}

	if format == "json" {
		if err := diagfmt.WriteCheck(cmd.OutOrStdout(), checkOutput(m.Package.Name, res)); err != nil {
			return err
		}
	} else {
		if !quiet {
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderTable(checkRows(res.Entries), terminalWidth(), colored))
		}
		if res.Bag.Len() > 0 {
			diag.Print(cmd.ErrOrStderr(), res.Bag.Items(), colored)
		}
	}

	switch {
	case res.Bag.HasErrors():
		return fmt.Errorf("check failed for %s", m.Package.Name)
	case strict && res.Bag.HasWarnings():
		return fmt.Errorf("check found ambiguous overload sets in %s", m.Package.Name)
	}
	return nil
}

func checkRows(entries []driver.Entry) []ui.Row {
	rows := make([]ui.Row, len(entries))
	for i, e := range entries {
		row := ui.Row{
			Name:      e.Subject,
			Overloads: e.Overloads,
			Arities:   e.Arities,
			Status:    ui.StatusOK,
		}
		switch {
		case e.Missing != "":
			row.Status = ui.StatusMissing
			row.Detail = "unknown type " + e.Missing
		case len(e.Ambiguous) > 0:
			row.Status = ui.StatusAmbiguous
			row.Detail = fmt.Sprintf("shared arity %v", e.Ambiguous)
		}
		rows[i] = row
	}
	return rows
}

func checkOutput(pkg string, res *driver.CheckResult) diagfmt.CheckOutput {
	out := diagfmt.CheckOutput{
		Package:     pkg,
		Sets:        make([]diagfmt.SetJSON, len(res.Entries)),
		Diagnostics: diagfmt.Diagnostics(res.Bag.Items()),
	}
	for i, e := range res.Entries {
		out.Sets[i] = diagfmt.SetJSON{
			Name:      e.Subject,
			Overloads: e.Overloads,
			Arities:   e.Arities,
			Ambiguous: e.Ambiguous,
			Missing:   e.Missing,
		}
	}
	return out
}
