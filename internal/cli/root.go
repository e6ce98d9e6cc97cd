// Package cli is the cobra command tree of the amplicon binary.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"amplicon/internal/app"
	"amplicon/internal/config"
	"amplicon/internal/version"
)

// Execute runs the command line in args and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := app.ExitOK
	root := NewRootCmd(stdout, stderr, &code)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintln(stderr, "run 'amplicon --help' for usage")
		return app.ExitUsage
	}
	return code
}

// NewRootCmd builds the root command. The scan's exit code is stored in
// *code; cobra errors are usage errors.
func NewRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amplicon -f genome.fa -p primers.tsv",
		Short: "Find in-silico PCR amplicons of primer pairs in FASTA sequences",
		Long: `Find every exact-match amplicon of each primer pair in each FASTA record.

The forward primer is matched as given; the reverse primer is matched as its
reverse complement downstream. A candidate is kept when the insert between
the two primer sites falls inside the pair's [min, max] window.

Every flag can also be set with an AMPLICON_<FLAG> environment variable
(e.g. AMPLICON_THREADS=8) or a YAML file passed with --config.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			*code = app.Run(cmd.Context(), cfg, stdout, stderr)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().SortFlags = false

	cmd.AddCommand(newFormatsCmd(stdout))
	return cmd
}
