package app

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/cmd/output"
	"github.com/keyfold/keyfold/internal/tabular"
	"github.com/keyfold/keyfold/pkg/errors"
	"github.com/keyfold/keyfold/pkg/records"
	"github.com/keyfold/keyfold/pkg/resolve"
)

// NewCleanCommand creates the clean command, the end-to-end file-to-file run.
func (a *App) NewCleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Unify near-duplicate texts in a delimited file",
		Long: `Clean reads a delimited file with a raw_text column, fingerprints every
row, and writes a two-column file (raw_text, canonical_text) where all rows
sharing a fingerprint carry the same canonical text.

Pass "-" as the output path to write to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runClean(cmd)
		},
	}

	cmd.Flags().StringVarP(&a.config.Input, "input", "i", a.config.Input, "input file path (required)")
	cmd.Flags().StringVar(&a.config.Output, "output", a.config.Output, "output file path, or - for stdout (required)")
	cmd.Flags().StringVar(&a.config.Intermediate, "intermediate", a.config.Intermediate, "also write the full table including the key column here")
	cmd.Flags().StringVar(&a.config.GroupsFile, "groups", a.config.GroupsFile, "also write the fingerprint groups as YAML here")
	cmd.Flags().StringVarP(&a.config.Delimiter, "delimiter", "d", a.config.Delimiter, "field delimiter")
	cmd.Flags().BoolVar(&a.config.Preview, "preview", a.config.Preview, "print the cleaned table to the console after the run")

	return cmd
}

func (a *App) runClean(cmd *cobra.Command) error {
	if a.config.Input == "" {
		return errors.NewValidationError("input", nil, "input file path is required")
	}
	if a.config.Output == "" {
		return errors.NewValidationError("output", nil, "output file path is required")
	}

	opts := tabular.Options{Delimiter: a.config.DelimiterRune()}

	ds, err := tabular.ReadFile(a.config.Input, opts)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("path", a.config.Input).Int("records", len(ds)).Msg("loaded input")

	pipeline, err := a.Pipeline()
	if err != nil {
		return err
	}

	cleaned, err := pipeline.Run(ds)
	if err != nil {
		return err
	}

	if a.config.Intermediate != "" {
		if err := tabular.WriteIntermediateFile(a.config.Intermediate, cleaned, opts); err != nil {
			return err
		}
		a.logger.Debug().Str("path", a.config.Intermediate).Msg("wrote intermediate table")
	}

	groups := resolve.Groups(cleaned)
	if a.config.GroupsFile != "" {
		if err := tabular.WriteGroupsFile(a.config.GroupsFile, groups); err != nil {
			return err
		}
		a.logger.Debug().Str("path", a.config.GroupsFile).Msg("wrote groups artifact")
	}

	if a.config.Output == "-" {
		if err := tabular.Write(os.Stdout, cleaned, opts); err != nil {
			return err
		}
	} else if err := tabular.WriteFile(a.config.Output, cleaned, opts); err != nil {
		return err
	}

	if a.config.Preview {
		if err := a.renderPreview(cmd, cleaned); err != nil {
			return err
		}
	}

	a.logger.Info().
		Int("records", len(cleaned)).
		Int("groups", len(groups)).
		Int("collapsed", len(cleaned)-len(groups)).
		Str("output", a.config.Output).
		Msg("clean complete")

	return nil
}

// renderPreview prints the cleaned table to the console, the way the
// groups command renders its report.
func (a *App) renderPreview(cmd *cobra.Command, ds records.Dataset) error {
	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	formatter := output.NewFormatter(format)
	if format == output.FormatTable {
		data := output.Data{
			Headers: []string{tabular.ColumnRawText, tabular.ColumnCanonicalText},
		}
		for _, r := range ds {
			data.Rows = append(data.Rows, []string{r.RawText, r.CanonicalText})
		}
		return formatter.Format(cmd.OutOrStdout(), data)
	}
	return formatter.Format(cmd.OutOrStdout(), ds)
}

// NewKeyCommand creates the key command, a debug aid that prints the
// fingerprint for each argument.
func (a *App) NewKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "key <text>...",
		Short: "Print the fingerprint key for the given texts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}
			for _, text := range args {
				fmt.Fprintln(cmd.OutOrStdout(), pipeline.Key(text))
			}
			return nil
		},
	}
}

// NewGroupsCommand creates the groups command, which reports how the rows of
// a file collapse into fingerprint groups.
func (a *App) NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Show the fingerprint groups of a delimited file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGroups(cmd)
		},
	}

	cmd.Flags().StringVarP(&a.config.Input, "input", "i", a.config.Input, "input file path (required)")
	cmd.Flags().StringVarP(&a.config.Delimiter, "delimiter", "d", a.config.Delimiter, "field delimiter")

	return cmd
}

func (a *App) runGroups(cmd *cobra.Command) error {
	if a.config.Input == "" {
		return errors.NewValidationError("input", nil, "input file path is required")
	}

	ds, err := tabular.ReadFile(a.config.Input, tabular.Options{Delimiter: a.config.DelimiterRune()})
	if err != nil {
		return err
	}

	pipeline, err := a.Pipeline()
	if err != nil {
		return err
	}
	groups := pipeline.Groups(ds)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	format = output.DetectFormat(string(format))

	formatter := output.NewFormatter(format)
	if format == output.FormatTable {
		data := output.Data{
			Headers: []string{"key", "size", "representative"},
		}
		for _, g := range groups {
			data.Rows = append(data.Rows, []string{g.Key, strconv.Itoa(g.Size), g.Representative})
		}
		return formatter.Format(cmd.OutOrStdout(), data)
	}
	return formatter.Format(cmd.OutOrStdout(), groups)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "keyfold version %s\n", a.version)
			fmt.Fprintf(w, "commit: %s\n", a.commit)
			fmt.Fprintf(w, "built: %s\n", a.date)
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
