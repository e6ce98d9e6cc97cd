package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"amplicon/internal/writers"
)

func newFormatsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats accepted by --format",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, name := range writers.Registered() {
				if _, err := fmt.Fprintln(stdout, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
