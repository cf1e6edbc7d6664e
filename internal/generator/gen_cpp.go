package generator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/idlbridge/idlbridge/internal/render"
	"github.com/idlbridge/idlbridge/internal/templates"
	"github.com/idlbridge/idlbridge/internal/typetraits"
)

// generateTypeTraits writes the shared JS/C++ conversion header.
// The table depends only on the built-in catalog, never on the schemas.
func (g *Generator) generateTypeTraits() error {
	rel := g.cfg.Output.TypeTraitsFile
	data := render.NewTypeTraitsContext(typetraits.Entries(), rel)
	return g.write(templates.TypeTraits, rel, data)
}

// generateInterfaces writes the header and implementation of every bridge.
// Each interface is an independent unit of work; the call returns once all
// of them have finished or the first one has failed.
func (g *Generator) generateInterfaces(ctx context.Context, bridges []render.InterfaceContext) error {
	eg, ctx := errgroup.WithContext(ctx)
	if limit := workerLimit(g.cfg); limit > 0 {
		eg.SetLimit(limit)
	}
	for _, b := range bridges {
		b := b
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.generateInterface(b)
		})
	}
	return eg.Wait()
}

// generateInterface writes both files of one bridge from one shared context.
func (g *Generator) generateInterface(b render.InterfaceContext) error {
	if err := g.write(templates.InterfaceHeader, b.HeaderPath, b); err != nil {
		return err
	}
	return g.write(templates.InterfaceImpl, b.ImplPath, b)
}

// generateRegistration writes the file that registers every bridge with the
// addon's exports. It takes the same bridge list as generateInterfaces.
func (g *Generator) generateRegistration(bridges []render.InterfaceContext) error {
	data := render.NewRegistrationContext(g.cfg.Output.ModuleName, bridges)
	return g.write(templates.Registration, g.cfg.Output.RegistrationFile, data)
}
