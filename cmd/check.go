package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/idlbridge/idlbridge/internal/generator"
	"github.com/idlbridge/idlbridge/internal/idl"
	"github.com/idlbridge/idlbridge/internal/loader"
)

// checkCmd parses schemas without writing anything.
var checkCmd = &cobra.Command{
	Use:   "check <root_dir> [schema_file...]",
	Short: "Parse schemas and list their definitions",
	Long: `Parse the schema files and list every top-level definition with its kind,
directory and whether a bridge would be generated for it.`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck prints one row per definition in parse order.
func runCheck(ctx context.Context, out io.Writer, rootDir string, schemas []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ldr, err := loader.New(rootDir, 0)
	if err != nil {
		return err
	}
	sources, err := ldr.ReadAll(ctx, schemas)
	if err != nil {
		return err
	}
	defs, err := idl.NewParser().Parse(sources)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tDIR\tBRIDGE")
	for _, d := range defs {
		bridge := "-"
		if d.IsInterface() {
			bridge = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Kind, d.Name, d.IDLDirName, bridge)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d definitions, %d interfaces\n", len(defs), len(generator.Interfaces(defs)))
	return nil
}
