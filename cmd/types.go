package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/idlbridge/idlbridge/internal/typetraits"
)

// typesCmd prints the built-in type catalog.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the IDL types with a JS/C++ conversion",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTypes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "IDL\tC++\tARGUMENT\tNAPI\tJS")
	for _, e := range typetraits.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.IDLType, e.NativeType, e.ArgType, e.NapiType, e.JSType)
	}
	return tw.Flush()
}
