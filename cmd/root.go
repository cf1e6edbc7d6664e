package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/ui"
)

// Exit codes.
const (
	exitUsage  = 1
	exitFailed = 2
)

// rootCmd generates bridges when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "idlbridge <root_dir> <output_dir> [schema_file...]",
	Short: "Generate Node-API C++ bridges from WebIDL schemas",
	Long: `idlbridge reads WebIDL schema files and writes, for every interface, a C++
class that exposes the hand-written native implementation to JavaScript
through Node-API. It also writes the shared JS/C++ type-trait table and one
registration file that installs every bridge on the addon's exports.

Schema paths and a relative output_dir are resolved against root_dir.
Schema files must lie inside root_dir; a path escaping it is rejected.
Bridges are written below output_dir, mirroring each schema's directory.`,
	Args:          usageArgs(cobra.MinimumNArgs(2)),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), cmd.OutOrStdout(), genFlags, args[0], args[1], args[2:])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// errUsage marks command line mistakes: wrong argument counts and bad flags.
var errUsage = errors.New("usage error")

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Mark(err, errUsage)
}

// usageArgs marks the errors of an argument validator as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}

// reportError prints err once and returns the process exit code: 1 for a
// usage error, 2 for anything else.
func reportError(w io.Writer, err error) int {
	p := ui.New(w, ui.ColorEnabled(w))
	label := "Error:"
	if kind := errors.KindOf(err); kind != "Error" {
		label = fmt.Sprintf("Error [%s]:", kind)
	}
	p.Error(label, err.Error())
	for _, hint := range errors.GetAllHints(err) {
		p.Warning("hint", hint)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", rootCmd.Name())
		return exitUsage
	}
	return exitFailed
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	f := rootCmd.Flags()
	f.StringVar(&genFlags.configPath, "config", "", "config file (default <root_dir>/idlbridge.yaml when present)")
	f.StringVar(&genFlags.templatesDir, "templates", "", "directory overriding the built-in templates")
	f.BoolVar(&genFlags.sequential, "sequential", false, "emit one file at a time")
	f.StringVar(&genFlags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVar(&genFlags.logFile, "log-file", "", "write logs to this file instead of stderr")
	f.BoolVarP(&genFlags.quiet, "quiet", "q", false, "print nothing on success")
}
