package driver

import (
	"context"
	"fmt"

	"wrapgen/internal/decl"
	"wrapgen/internal/manifest"
	"wrapgen/internal/overload"
	"wrapgen/internal/trace"
)

// Class is one concrete class: either a plain class or one instantiation of
// a template.
type Class struct {
	Name     decl.Qualified
	Template string // source class for instantiations, empty otherwise
	Methods  map[string]*Callable
}

// Module is the collected and expanded declaration set of one manifest.
type Module struct {
	Package   string
	Functions map[string]*Callable
	Classes   []Class
	Known     overload.TypeSet
}

// Collect builds every overload set the manifest declares and expands the
// templated ones. jobs bounds the expansion goroutines.
func Collect(ctx context.Context, m *manifest.Manifest, jobs int) (*Module, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "collect", 0)
	defer span.End("")

	mod := &Module{
		Package:   m.Package.Name,
		Functions: make(map[string]*Callable, len(m.Functions)),
		Known:     overload.NewTypeSet(decl.BasisNames()...),
	}
	mod.Known.Add(m.Types.Known...)

	for _, f := range m.Functions {
		if err := collectFunction(mod, f); err != nil {
			trace.Failure(tr, "collect", err, span.ID())
			return nil, err
		}
	}
	for _, c := range m.Classes {
		classes, err := collectClass(ctx, c, jobs)
		if err != nil {
			trace.Failure(tr, "collect", err, span.ID())
			return nil, err
		}
		for _, cls := range classes {
			mod.Known.Add(cls.Name.QualifiedName("::"))
			trace.Point(tr, trace.ScopeSet, "class", cls.Name.String(), span.ID())
		}
		mod.Classes = append(mod.Classes, classes...)
	}
	span.WithExtra("functions", fmt.Sprint(len(mod.Functions))).
		WithExtra("classes", fmt.Sprint(len(mod.Classes)))
	return mod, nil
}

func collectFunction(mod *Module, f manifest.Function) error {
	returns := f.ReturnType()
	if f.Template == "" {
		c, ok := mod.Functions[f.Name]
		if !ok {
			c = newCallable(returns)
			mod.Functions[f.Name] = c
		}
		for _, ov := range f.Overloads {
			if err := c.add(f.Name, ov.ArgumentList(), nil, f.Verbose, returns); err != nil {
				return err
			}
		}
		return nil
	}

	for _, inst := range f.Instantiations {
		concrete := decl.ParseQualified(inst)
		name := f.Name + concrete.Name
		c, ok := mod.Functions[name]
		if !ok {
			c = newCallable(returns)
			mod.Functions[name] = c
		}
		for _, ov := range f.Overloads {
			if err := c.add(name, ov.ArgumentList(), &concrete, f.Verbose, returns); err != nil {
				return err
			}
		}
		c.ExpandTemplate(decl.NewSubstitution(f.Template, concrete))
	}
	return nil
}

func collectClass(ctx context.Context, c manifest.Class, jobs int) ([]Class, error) {
	self := decl.ParseQualified(c.Name)
	methods := make(map[string]*Callable, len(c.Methods))
	for _, mt := range c.Methods {
		cal, ok := methods[mt.Name]
		if !ok {
			cal = newCallable(mt.ReturnType())
			methods[mt.Name] = cal
		}
		for _, ov := range mt.Overloads {
			if err := cal.add(mt.Name, ov.ArgumentList(), nil, mt.Verbose, mt.ReturnType()); err != nil {
				return nil, fmt.Errorf("class %s: %w", c.Name, err)
			}
		}
	}

	if c.Template == "" {
		ts := decl.TemplateSubstitution{Expanded: self}
		return []Class{{Name: self, Methods: overload.ExpandMethodTemplate(methods, ts)}}, nil
	}

	subs := make([]decl.TemplateSubstitution, len(c.Instantiations))
	for i, inst := range c.Instantiations {
		concrete := decl.ParseQualified(inst)
		subs[i] = decl.TemplateSubstitution{
			Placeholder: c.Template,
			Concrete:    concrete,
			Expanded:    instantiatedName(self, concrete),
		}
	}
	tables, err := overload.ExpandParallel(ctx, methods, subs, jobs)
	if err != nil {
		return nil, err
	}
	out := make([]Class, len(tables))
	for i, table := range tables {
		out[i] = Class{Name: subs[i].Expanded, Template: c.Name, Methods: table}
	}
	return out, nil
}

// instantiatedName names the class produced by instantiating self with
// concrete: PriorFactor + Pose2 gives PriorFactorPose2 in self's namespace.
func instantiatedName(self, concrete decl.Qualified) decl.Qualified {
	return decl.Qualified{
		Namespaces: append([]string(nil), self.Namespaces...),
		Name:       self.Name + concrete.Name,
	}
}

// Verify checks every argument type against mod.Known. Functions come first
// in name order, then classes in declaration order; the first failure wins.
func Verify(ctx context.Context, mod *Module) error {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "verify", 0)
	defer span.End("")

	if err := overload.VerifyAll(mod.Known, mod.Functions); err != nil {
		trace.Failure(tr, "verify", err, span.ID())
		return err
	}
	for _, cls := range mod.Classes {
		if err := overload.VerifyAll(mod.Known, cls.Methods); err != nil {
			err = fmt.Errorf("class %s: %w", cls.Name, err)
			trace.Failure(tr, "verify", err, span.ID())
			return err
		}
	}
	return nil
}
