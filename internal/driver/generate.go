package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"wrapgen/internal/backend"
	"wrapgen/internal/diag"
	"wrapgen/internal/gencache"
	"wrapgen/internal/guard"
	"wrapgen/internal/manifest"
	"wrapgen/internal/observ"
	"wrapgen/internal/overload"
	"wrapgen/internal/trace"

	// registered back ends
	_ "wrapgen/internal/backend/cython"
	_ "wrapgen/internal/backend/python"
)

// Options override manifest settings for one run.
type Options struct {
	Backend  string // empty keeps [generate].backend
	Indent   int    // <= 0 keeps [generate].indent
	Jobs     int    // <= 0 uses [generate].jobs, then no limit
	Cache    *gencache.Cache
	Timer    *observ.Timer
	Reporter diag.Reporter
}

// Unit is one rendered overload set.
type Unit struct {
	Name      string
	Dispatch  guard.Dispatch
	Fragments backend.Fragments
	Cached    bool
}

// Result is the output of Generate.
type Result struct {
	Backend   string
	Units     []Unit
	Text      string
	CacheHits int
}

// Generate runs collect, verify and emit for m.
func Generate(ctx context.Context, m *manifest.Manifest, opts Options) (*Result, error) {
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeRun, "generate", 0)
	defer root.End("")

	timer := opts.Timer
	if timer == nil {
		timer = observ.NewTimer()
	}
	lang := m.Generate.Backend
	if opts.Backend != "" {
		lang = opts.Backend
	}
	b, err := backend.Lookup(lang)
	if err != nil {
		return nil, diag.Errorf(diag.CfgUnknownBackend, m.Path, "%v", err)
	}
	indent := m.Generate.IndentLevel()
	if opts.Indent > 0 {
		indent = opts.Indent
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = m.Generate.Jobs
	}

	var mod *Module
	if err := timer.Measure("collect", func() error {
		var cerr error
		mod, cerr = Collect(ctx, m, jobs)
		return cerr
	}); err != nil {
		return nil, err
	}
	if err := timer.Measure("verify", func() error { return Verify(ctx, mod) }); err != nil {
		return nil, err
	}

	res := &Result{Backend: b.Language()}
	err = timer.Measure("emit", func() error {
		units, hits, eerr := emit(ctx, b, indent, jobs, mod, opts)
		if eerr != nil {
			return eerr
		}
		res.Units = units
		res.CacheHits = hits
		res.Text = assemble(b, mod.Package, indent, units)
		return nil
	})
	if err != nil {
		return nil, err
	}
	root.WithExtra("units", fmt.Sprint(len(res.Units))).WithExtra("cache_hits", fmt.Sprint(res.CacheHits))
	return res, nil
}

// Units lists every overload set of mod in output order: functions by name,
// then each class in declaration order with its methods by name.
func Units(mod *Module) []Unit {
	units := make([]Unit, 0, len(mod.Functions))
	for _, name := range overload.SortedNames(mod.Functions) {
		units = append(units, Unit{Name: name, Dispatch: mod.Functions[name].Dispatch(name)})
	}
	for _, cls := range mod.Classes {
		for _, name := range overload.SortedNames(cls.Methods) {
			display := cls.Name.Name + "." + name
			units = append(units, Unit{Name: display, Dispatch: cls.Methods[name].Dispatch(display)})
		}
	}
	return units
}

func emit(ctx context.Context, b backend.Backend, indent, jobs int, mod *Module, opts Options) ([]Unit, int, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "emit", 0)
	defer span.End("")

	units := Units(mod)
	cacheErrs := make([]error, len(units))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i := range units {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			u := &units[i]
			setSpan := trace.Begin(tr, trace.ScopeSet, u.Name, span.ID())
			defer setSpan.End("")

			key := gencache.KeyFor(b.Language(), indent, u.Dispatch)
			if frags, ok, err := opts.Cache.Get(key); err != nil {
				cacheErrs[i] = err
			} else if ok {
				u.Fragments, u.Cached = frags, true
				setSpan.WithExtra("cache", "hit")
				return nil
			}

			u.Fragments = backend.RenderDispatch(b, u.Dispatch, indent)
			for _, gd := range u.Dispatch.Guards {
				trace.Point(tr, trace.ScopeSignature, u.Name, gd.Label, setSpan.ID())
			}
			if opts.Cache == nil {
				return nil
			}
			payload, err := gencache.FromFragments(b.Language(), u.Fragments)
			if err == nil {
				err = opts.Cache.Put(key, payload)
			}
			if err != nil {
				cacheErrs[i] = errors.Join(cacheErrs[i], err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		trace.Failure(tr, "emit", err, span.ID())
		return nil, 0, err
	}

	hits := 0
	for i, u := range units {
		if u.Cached {
			hits++
		}
		if cacheErrs[i] != nil && opts.Reporter != nil {
			opts.Reporter.Report(diag.EmtCacheError, diag.SevWarning, u.Name, cacheErrs[i].Error(), nil)
		}
	}
	return units, hits, nil
}

// assemble joins the prelude and one function group per unit into a
// loadable module.
func assemble(b backend.Backend, pkg string, indent int, units []Unit) string {
	var sb strings.Builder
	sb.WriteString(backend.Prelude(b, pkg))
	for _, u := range units {
		sb.WriteString("\n\n")
		sb.WriteString(backend.RenderSource(b, u.Dispatch, u.Fragments, indent))
	}
	return sb.String()
}

// WriteOutput writes text to path, creating parent directories.
func WriteOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return diag.Errorf(diag.EmtWriteError, path, "%v", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return diag.Errorf(diag.EmtWriteError, path, "%v", err)
	}
	return nil
}
