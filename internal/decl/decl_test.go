package decl

import "testing"

func TestParseQualified(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ns   int
	}{
		{"double", "double", 0},
		{"gtsam::Pose2", "gtsam::Pose2", 1},
		{" gtsam :: noiseModel :: Base ", "gtsam::noiseModel::Base", 2},
		{"", "", 0},
	}
	for _, tc := range cases {
		q := ParseQualified(tc.in)
		if got := q.QualifiedName("::"); got != tc.want {
			t.Fatalf("ParseQualified(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if len(q.Namespaces) != tc.ns {
			t.Fatalf("ParseQualified(%q) namespaces = %v", tc.in, q.Namespaces)
		}
	}
	if got := ParseQualified("gtsam::Pose2").QualifiedName("."); got != "gtsam.Pose2" {
		t.Fatalf("custom delimiter: got %q", got)
	}
}

func TestTemplateSubstitution(t *testing.T) {
	ts := TemplateSubstitution{
		Placeholder: "T",
		Concrete:    ParseQualified("gtsam::Pose2"),
		Expanded:    ParseQualified("gtsam::PriorFactorPose2"),
	}
	if got := ts.TryToSubstitute(ParseQualified("T")); got.String() != "gtsam::Pose2" {
		t.Fatalf("placeholder not substituted: %s", got)
	}
	if got := ts.TryToSubstitute(ParseQualified("This")); got.String() != "gtsam::PriorFactorPose2" {
		t.Fatalf("self type not substituted: %s", got)
	}
	if got := ts.TryToSubstitute(ParseQualified("ns::T")); got.String() != "ns::T" {
		t.Fatalf("qualified name must not match placeholder: %s", got)
	}
	noSelf := NewSubstitution("T", ParseQualified("double"))
	if got := noSelf.TryToSubstitute(ParseQualified("This")); got.String() != "This" {
		t.Fatalf("self type without expansion must stay: %s", got)
	}
}

func TestArgumentListExpandKeepsNamesAndOrder(t *testing.T) {
	list := ArgumentList{
		{Name: "key", Type: ParseQualified("size_t")},
		{Name: "prior", Type: ParseQualified("T"), IsConst: true, IsRef: true},
		{Name: "other", Type: ParseQualified("T")},
	}
	out := list.ExpandTemplate(NewSubstitution("T", ParseQualified("gtsam::Point2")))
	if len(out) != len(list) {
		t.Fatalf("arity changed: %d -> %d", len(list), len(out))
	}
	for i := range list {
		if out[i].Name != list[i].Name {
			t.Fatalf("name %d changed: %q -> %q", i, list[i].Name, out[i].Name)
		}
	}
	if got := out.Types("::"); got[0] != "size_t" || got[1] != "gtsam::Point2" || got[2] != "gtsam::Point2" {
		t.Fatalf("unexpected types %v", got)
	}
	if list[1].Type.Name != "T" {
		t.Fatalf("input list mutated")
	}
	if got := out.String(); got != "(size_t key, const gtsam::Point2& prior, gtsam::Point2 other)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestArgumentListCloneIsDeep(t *testing.T) {
	list := ArgumentList{{Name: "p", Type: ParseQualified("gtsam::Pose2")}}
	cp := list.Clone()
	cp[0].Type.Namespaces[0] = "other"
	if list[0].Type.Namespaces[0] != "gtsam" {
		t.Fatalf("clone shares namespace storage")
	}
	if !list.Equal(list.Clone()) {
		t.Fatalf("clone not equal to source")
	}
}

func TestIsBasis(t *testing.T) {
	for _, name := range []string{"double", "int", "size_t", "std::string", "unsigned char"} {
		if !ParseQualified(name).IsBasis() {
			t.Fatalf("%s should be basis", name)
		}
	}
	if ParseQualified("gtsam::Pose2").IsBasis() {
		t.Fatalf("class type reported as basis")
	}
	if !ParseQualified("void").IsVoid() || !(Qualified{}).IsVoid() {
		t.Fatalf("void detection broken")
	}
}
