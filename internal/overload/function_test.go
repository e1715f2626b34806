package overload

import (
	"context"
	"errors"
	"testing"

	"wrapgen/internal/decl"
)

func TestAddOverloadIdentity(t *testing.T) {
	var f OverloadedFunction
	sigA := sig("x", "double")
	sigB := sig("x", "double", "y", "double")

	first, err := f.AddOverload("foo", sigA, nil, false)
	if err != nil || !first {
		t.Fatalf("first add: first=%t err=%v", first, err)
	}
	first, err = f.AddOverload("foo", sigB, nil, false)
	if err != nil || first {
		t.Fatalf("second add: first=%t err=%v", first, err)
	}
	if !f.ArgumentList(0).Equal(sigA) || !f.ArgumentList(1).Equal(sigB) {
		t.Fatalf("signatures stored out of order")
	}

	inst := decl.ParseQualified("gtsam::Pose2")
	_, err = f.AddOverload("foo", sig("p", "gtsam::Pose2"), &inst, false)
	var ic *IdentityConflictError
	if !errors.As(err, &ic) || ic.Field != "instantiation" {
		t.Fatalf("want instantiation conflict, got %v", err)
	}
	if f.NrOverloads() != 2 || !f.ArgumentList(0).Equal(sigA) || !f.ArgumentList(1).Equal(sigB) {
		t.Fatalf("conflicting add corrupted the set")
	}

	if _, err := f.AddOverload("bar", sigA, nil, false); !errors.As(err, &ic) || ic.Field != "name" {
		t.Fatalf("want name conflict, got %v", err)
	}
	if _, err := f.AddOverload("foo", sigA, nil, true); !errors.As(err, &ic) || ic.Field != "verbose" {
		t.Fatalf("want verbose conflict, got %v", err)
	}
}

func TestAddOverloadInstantiationIdentity(t *testing.T) {
	var f OverloadedFunction
	pose := decl.ParseQualified("gtsam::Pose2")
	if first, err := f.AddOverload("load", sig("p", "gtsam::Pose2"), &pose, false); err != nil || !first {
		t.Fatalf("first add failed: %v", err)
	}
	pose.Name = "Mutated"
	if f.InstName().Name != "Pose2" {
		t.Fatalf("identity aliases the caller's value")
	}
	same := decl.ParseQualified("gtsam::Pose2")
	if _, err := f.AddOverload("load", sig(), &same, false); err != nil {
		t.Fatalf("matching identity rejected: %v", err)
	}
	if _, err := f.AddOverload("load", sig(), nil, false); err == nil {
		t.Fatalf("dropping the identity must conflict")
	}
}

func TestAddOverloadEmptyName(t *testing.T) {
	var f OverloadedFunction
	if _, err := f.AddOverload("", sig(), nil, false); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("want ErrEmptyName, got %v", err)
	}
	if f.NrOverloads() != 0 {
		t.Fatalf("empty-name add must not append")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	var f OverloadedFunction
	inst := decl.ParseQualified("ns::T")
	if _, err := f.AddOverload("f", sig("a", "T"), &inst, false); err != nil {
		t.Fatal(err)
	}
	cp := f.Clone()
	cp.ExpandTemplate(decl.NewSubstitution("T", decl.ParseQualified("double")))
	if f.ArgumentList(0)[0].Type.Name != "T" {
		t.Fatalf("expanding the clone changed the original")
	}
	if cp.ArgumentList(0)[0].Type.Name != "double" {
		t.Fatalf("clone not expanded")
	}
	cp.InstName().Namespaces[0] = "changed"
	if f.InstName().Namespaces[0] != "ns" {
		t.Fatalf("clone shares identity storage")
	}
}

func table(t *testing.T) map[string]*OverloadedFunction {
	t.Helper()
	tab := map[string]*OverloadedFunction{}
	add := func(name string, args decl.ArgumentList) {
		f, ok := tab[name]
		if !ok {
			f = &OverloadedFunction{}
			tab[name] = f
		}
		if _, err := f.AddOverload(name, args, nil, false); err != nil {
			t.Fatal(err)
		}
	}
	add("equals", sig("other", "This", "tol", "double"))
	add("print", sig("s", "string"))
	add("value", sig())
	add("value", sig("x", "T"))
	return tab
}

func TestExpandMethodTemplateLeavesInputUntouched(t *testing.T) {
	tab := table(t)
	ts := decl.TemplateSubstitution{
		Placeholder: "T",
		Concrete:    decl.ParseQualified("gtsam::Point2"),
		Expanded:    decl.ParseQualified("gtsam::PriorFactorPoint2"),
	}
	out := ExpandMethodTemplate(tab, ts)
	if len(out) != len(tab) {
		t.Fatalf("key count changed")
	}
	if got := out["value"].ArgumentList(1)[0].Type.String(); got != "gtsam::Point2" {
		t.Fatalf("value(T) expanded to %s", got)
	}
	if got := out["equals"].ArgumentList(0)[0].Type.String(); got != "gtsam::PriorFactorPoint2" {
		t.Fatalf("This expanded to %s", got)
	}
	if tab["value"].ArgumentList(1)[0].Type.Name != "T" || out["value"] == tab["value"] {
		t.Fatalf("input table was mutated")
	}
}

func TestVerifyAllStopsAtFirstFailingEntry(t *testing.T) {
	tab := table(t)
	tab = ExpandMethodTemplate(tab, decl.TemplateSubstitution{
		Placeholder: "T",
		Concrete:    decl.ParseQualified("gtsam::Point2"),
		Expanded:    decl.ParseQualified("gtsam::Missing"),
	})
	known := NewTypeSet("double", "string", "gtsam::Point2")
	err := VerifyAll(known, tab)
	var dm *DependencyMissingError
	if !errors.As(err, &dm) {
		t.Fatalf("want DependencyMissingError, got %v", err)
	}
	// "equals" sorts first and carries the missing self type
	if dm.Type != "gtsam::Missing" || dm.Context != "checking argument of equals" {
		t.Fatalf("unexpected failure %+v", dm)
	}
	known.Add("gtsam::Missing")
	if err := VerifyAll(known, tab); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestExpandParallelKeepsSubstitutionOrder(t *testing.T) {
	tab := table(t)
	subs := []decl.TemplateSubstitution{
		decl.NewSubstitution("T", decl.ParseQualified("double")),
		decl.NewSubstitution("T", decl.ParseQualified("gtsam::Pose2")),
		decl.NewSubstitution("T", decl.ParseQualified("gtsam::Point3")),
	}
	out, err := ExpandParallel(context.Background(), tab, subs, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, ts := range subs {
		if got := out[i]["value"].ArgumentList(1)[0].Type; !got.Equal(ts.Concrete) {
			t.Fatalf("result %d expanded to %s, want %s", i, got, ts.Concrete)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExpandParallel(ctx, tab, subs, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
