package gencache

import (
	"testing"

	"wrapgen/internal/backend"
	"wrapgen/internal/decl"
	"wrapgen/internal/guard"
)

func sampleDispatch(name string) guard.Dispatch {
	args := decl.ArgumentList{{Name: "x", Type: decl.ParseQualified("double")}}
	return guard.Dispatch{
		Name:    name,
		Returns: true,
		Guards: []guard.Guard{{
			Index: 0,
			Label: args.String(),
			Stmts: []guard.Stmt{guard.NewArityCheck(1, true), guard.NewBindAndCoerce(args, true)},
		}},
	}
}

func TestKeyForSeparatesInputs(t *testing.T) {
	d := sampleDispatch("f")
	base := KeyFor("cython", 2, d)
	if base != KeyFor("cython", 2, sampleDispatch("f")) {
		t.Fatalf("key is not deterministic")
	}
	others := map[string]Key{
		"backend": KeyFor("python", 2, d),
		"indent":  KeyFor("cython", 3, d),
		"name":    KeyFor("cython", 2, sampleDispatch("g")),
	}
	for what, k := range others {
		if k == base {
			t.Fatalf("changing %s did not change the key", what)
		}
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := KeyFor("cython", 2, sampleDispatch("f"))

	if _, ok, err := c.Get(key); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	want := backend.Fragments{
		Name:      "f",
		Ambiguity: "\t\tif ...\n",
		Guards:    []string{"\t\tif len(args)+len(kwargs) !=1:\n"},
		Labels:    []string{"(double x)"},
	}
	payload, err := FromFragments("cython", want)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Name != want.Name || got.Ambiguity != want.Ambiguity ||
		len(got.Guards) != 1 || got.Guards[0] != want.Guards[0] || got.Labels[0] != want.Labels[0] {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, _ := c.Get(key); ok {
		t.Fatalf("entry survived DropAll")
	}
}

func TestStalePayloadIsMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := KeyFor("python", 4, sampleDispatch("f"))
	bad := &Payload{Schema: schemaVersion + 1, Name: "f", GuardCount: 1, Guards: []string{"x"}, Labels: []string{"()"}}
	if err := c.Put(key, bad); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("stale payload: ok=%v err=%v", ok, err)
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if err := c.Put(Key{}, &Payload{}); err != nil {
		t.Fatalf("nil put: %v", err)
	}
	if _, ok, err := c.Get(Key{}); ok || err != nil {
		t.Fatalf("nil get: ok=%v err=%v", ok, err)
	}
}
