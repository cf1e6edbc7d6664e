package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idlbridge/idlbridge/internal/config"
	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/generator"
	"github.com/idlbridge/idlbridge/internal/ui"
	"github.com/idlbridge/idlbridge/pkg/log"
)

// generateFlags holds the root command flags. Each one overrides the
// matching config file value when set.
type generateFlags struct {
	configPath   string
	templatesDir string
	sequential   bool
	logLevel     string
	logFile      string
	quiet        bool
}

var genFlags generateFlags

// runGenerate loads the configuration, then generates every artifact for
// schemas into outputDir and reports the written files to out.
//
// Parameters:
//   - ctx: The command context.
//   - out: Destination of the success report.
//   - flags: Command line overrides.
//   - rootDir: Directory schema paths are resolved against.
//   - outputDir: Destination root, relative to rootDir unless absolute.
//   - schemas: Schema paths, in parse order.
//
// Returns:
//   - error: The first failure, classified by the errors package.
func runGenerate(ctx context.Context, out io.Writer, flags generateFlags, rootDir, outputDir string, schemas []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(flags.configPath, rootDir)
	if err != nil {
		return err
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}

	logger, closeLog, err := log.Init(cfg.Logging.Path, cfg.Logging.Level)
	if err != nil {
		return errors.Config(err, "open log file %s", cfg.Logging.Path)
	}
	defer closeLog()

	res, err := generator.Generate(ctx, cfg, generator.Options{
		RootDir:   rootDir,
		OutputDir: outputDir,
		Schemas:   schemas,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if flags.quiet {
		return nil
	}
	p := ui.New(out, ui.ColorEnabled(out))
	p.Header(fmt.Sprintf("Generated %d files for %d interfaces in %s", len(res.Files), res.Interfaces, res.OutputDir))
	for _, f := range res.Files {
		p.Success("wrote", f)
	}
	return nil
}

// loadConfig reads the explicit config file, or <rootDir>/idlbridge.yaml if
// it exists, or falls back to the defaults.
func loadConfig(explicit, rootDir string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	candidate := filepath.Join(rootDir, config.FileName)
	if _, err := os.Stat(candidate); err == nil {
		return config.Load(candidate)
	}
	return config.Default(), nil
}

// apply overrides cfg with the flags that were set and revalidates it.
func (f generateFlags) apply(cfg *config.Config) error {
	if f.templatesDir != "" {
		cfg.Templates.Dir = f.templatesDir
	}
	if f.sequential {
		cfg.Generation.Sequential = true
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFile != "" {
		cfg.Logging.Path = f.logFile
	}
	if f.quiet && f.logLevel == "" {
		cfg.Logging.Level = "error"
	}
	return config.Validate(cfg)
}
