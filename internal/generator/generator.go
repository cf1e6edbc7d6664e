// Package generator runs a generation: it loads and parses schemas, then
// emits the type-trait table, the per-interface bridges and the aggregate
// registration file.
package generator

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/idlbridge/idlbridge/internal/config"
	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/idl"
	"github.com/idlbridge/idlbridge/internal/loader"
	"github.com/idlbridge/idlbridge/internal/output"
	"github.com/idlbridge/idlbridge/internal/render"
	"github.com/idlbridge/idlbridge/internal/templates"
)

// Options contains the inputs of one generation run.
type Options struct {
	// RootDir is the directory schema paths are resolved against.
	RootDir string
	// OutputDir is the destination root, created if absent. A relative
	// OutputDir is resolved against RootDir.
	OutputDir string
	// Schemas lists the schema files in the order they are parsed.
	Schemas []string
	// Logger receives progress messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Result describes a successful run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string
	// OutputDir is the resolved destination root.
	OutputDir string
	// Files lists every written path relative to the output directory:
	// the trait table, the bridges in definition order, then the
	// registration file.
	Files []string
	// Definitions is the number of parsed definitions.
	Definitions int
	// Interfaces is the number of interfaces that got bridges.
	Interfaces int
}

// Parser converts ordered sources into ordered definitions.
type Parser interface {
	Parse(sources []loader.Source) ([]idl.Definition, error)
}

// Generate orchestrates the entire code generation process.
// It loads the templates, reads and parses the schemas, then runs the three
// generation tasks. The first error anywhere aborts the run; files written
// before the abort are left in place.
//
// Parameters:
//   - ctx: Stops launching new work once a task has failed.
//   - cfg: The run configuration.
//   - opts: Directories and schema paths.
//
// Returns:
//   - *Result: The written files.
//   - error: The first failure, classified by the errors package.
func Generate(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	logger = logger.With("run", runID)

	env, err := render.NewEnvironment(TemplateFS(cfg), templates.Required()...)
	if err != nil {
		return nil, err
	}

	ldr, err := loader.New(opts.RootDir, workerLimit(cfg))
	if err != nil {
		return nil, err
	}
	sources, err := ldr.ReadAll(ctx, opts.Schemas)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded schemas", "count", len(sources), "root", ldr.Root())

	out := output.New(OutputRoot(opts.RootDir, opts.OutputDir))
	g := New(cfg, env, idl.NewParser(), out, logger)
	res, err := g.Run(ctx, sources)
	if err != nil {
		return nil, err
	}
	res.RunID = runID
	res.OutputDir = out.Root()
	return res, nil
}

// OutputRoot resolves outputDir against rootDir unless it is absolute.
func OutputRoot(rootDir, outputDir string) string {
	if filepath.IsAbs(outputDir) {
		return outputDir
	}
	return filepath.Join(rootDir, outputDir)
}

// TemplateFS returns the template set selected by cfg: the override
// directory when configured, the embedded set otherwise.
func TemplateFS(cfg *config.Config) fs.FS {
	if cfg.Templates.Dir != "" {
		return os.DirFS(cfg.Templates.Dir)
	}
	return templates.FS()
}

// Generator emits the artifacts of one run. It holds no state besides its
// read-only collaborators, so a Generator can be reused.
type Generator struct {
	cfg    *config.Config
	env    *render.Environment
	parser Parser
	out    *output.Writer
	log    *slog.Logger
}

// New returns a Generator.
func New(cfg *config.Config, env *render.Environment, parser Parser, out *output.Writer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, env: env, parser: parser, out: out, log: logger}
}

// Run parses sources and emits every artifact.
func (g *Generator) Run(ctx context.Context, sources []loader.Source) (*Result, error) {
	defs, err := g.parser.Parse(sources)
	if err != nil {
		return nil, err
	}
	return g.Emit(ctx, defs)
}

// Emit writes the artifacts for already parsed definitions.
//
// The trait table, the interface bridges and the registration file are
// independent tasks. They run concurrently unless the configuration asks
// for sequential generation; Emit returns only after every task, and every
// per-interface write inside them, has finished.
func (g *Generator) Emit(ctx context.Context, defs []idl.Definition) (*Result, error) {
	ifaces := Interfaces(defs)
	plan := g.plan(ifaces)
	if err := checkUnique(plan); err != nil {
		return nil, err
	}

	if err := g.out.EnsureRoot(); err != nil {
		return nil, err
	}

	eg, ctx := errgroup.WithContext(ctx)
	if limit := workerLimit(g.cfg); limit > 0 {
		eg.SetLimit(limit)
	}
	eg.Go(func() error {
		return g.generateTypeTraits()
	})
	eg.Go(func() error {
		return g.generateInterfaces(ctx, plan.bridges)
	})
	eg.Go(func() error {
		return g.generateRegistration(plan.bridges)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Files:       plan.files(),
		Definitions: len(defs),
		Interfaces:  len(ifaces),
	}
	g.log.Info("generation complete",
		"definitions", res.Definitions,
		"interfaces", res.Interfaces,
		"files", len(res.Files),
		"output", g.out.Root())
	return res, nil
}

// Interfaces returns the definitions that get bridges, in input order.
// Per-interface emission and the registration file both use this list, so
// the two can never disagree. Other kinds are dropped without a diagnostic.
func Interfaces(defs []idl.Definition) []idl.Definition {
	var out []idl.Definition
	for _, d := range defs {
		if d.IsInterface() {
			out = append(out, d)
		}
	}
	return out
}

// workerLimit returns the errgroup limit for cfg; 0 means unlimited.
func workerLimit(cfg *config.Config) int {
	if cfg.Generation.Sequential {
		return 1
	}
	return cfg.Generation.Workers
}

// runPlan is the full set of output paths of a run, computed before any
// file is written.
type runPlan struct {
	typeTraits   string
	registration string
	bridges      []render.InterfaceContext
}

func (g *Generator) plan(ifaces []idl.Definition) runPlan {
	out := g.cfg.Output
	p := runPlan{
		typeTraits:   path.Clean(out.TypeTraitsFile),
		registration: path.Clean(out.RegistrationFile),
		bridges:      make([]render.InterfaceContext, len(ifaces)),
	}
	for i, def := range ifaces {
		p.bridges[i] = render.NewInterfaceContext(def,
			output.BridgeFile(def.IDLDirName, def.Name, out.HeaderExt),
			output.BridgeFile(def.IDLDirName, def.Name, out.ImplExt),
			output.NativeHeader(def.IDLDirName, def.Name, out.HeaderExt),
			p.typeTraits,
		)
	}
	return p
}

func (p runPlan) files() []string {
	files := make([]string, 0, 2+2*len(p.bridges))
	files = append(files, p.typeTraits)
	for _, b := range p.bridges {
		files = append(files, b.HeaderPath, b.ImplPath)
	}
	return append(files, p.registration)
}

// checkUnique rejects runs where two artifacts map onto one path, e.g. two
// interfaces called HTTPRequest and HttpRequest in the same directory.
func checkUnique(p runPlan) error {
	owner := make(map[string]string, 2+2*len(p.bridges))
	claim := func(file, by string) error {
		if prev, ok := owner[file]; ok {
			return errors.Parse(nil, "%s and %s both generate %s", prev, by, file)
		}
		owner[file] = by
		return nil
	}

	if err := claim(p.typeTraits, "the type-trait table"); err != nil {
		return err
	}
	if err := claim(p.registration, "the registration file"); err != nil {
		return err
	}
	for _, b := range p.bridges {
		by := "interface " + b.Name + " (" + b.IDLDirName + ")"
		if err := claim(b.HeaderPath, by); err != nil {
			return err
		}
		if err := claim(b.ImplPath, by); err != nil {
			return err
		}
	}
	return nil
}

// write renders tmpl with data and stores the result at rel.
func (g *Generator) write(tmpl, rel string, data any) error {
	content, err := g.env.Render(tmpl, data)
	if err != nil {
		return errors.Wrapf(err, "generate %s", rel)
	}
	if _, err := g.out.Write(rel, content); err != nil {
		return err
	}
	g.log.Debug("generated", "file", rel, "template", tmpl)
	return nil
}
