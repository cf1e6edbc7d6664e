package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/idlbridge/idlbridge/internal/config"
	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/output"
	"github.com/idlbridge/idlbridge/internal/render"
	"github.com/idlbridge/idlbridge/internal/templates"
	"github.com/idlbridge/idlbridge/internal/ui"
)

var initForce bool

// initCmd writes a default configuration file.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default idlbridge.yaml",
	Long: `Write an idlbridge.yaml holding every option at its default value into dir
(the current directory when omitted).`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runInit(cmd.OutOrStdout(), dir, initForce)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

// runInit renders the default configuration into dir.
//
// Parameters:
//   - out: Destination of the report.
//   - dir: The directory to write idlbridge.yaml into, created if absent.
//   - force: Overwrite an existing file.
//
// Returns:
//   - error: A ConfigError if the file exists and force is unset, or the
//     template and write errors of the generation pipeline.
func runInit(out io.Writer, dir string, force bool) error {
	w := output.New(dir)
	dest := w.Path(config.FileName)
	if _, err := os.Stat(dest); err == nil && !force {
		return errors.WithHint(
			errors.Config(nil, "%s already exists", dest),
			"use --force to overwrite it",
		)
	}

	env, err := render.NewEnvironment(templates.FS(), templates.Config)
	if err != nil {
		return err
	}
	content, err := env.Render(templates.Config, config.Default())
	if err != nil {
		return err
	}
	if _, err := w.Write(config.FileName, content); err != nil {
		return err
	}

	p := ui.New(out, ui.ColorEnabled(out))
	p.Success("created", dest)
	fmt.Fprintf(out, "\nNext: idlbridge %s <output_dir> <schema_file...>\n", dir)
	return nil
}
