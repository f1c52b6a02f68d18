package params

import "testing"

type window struct {
	title  string
	handle Handle
}

func (w *window) Handle() Handle { return w.handle }

func TestRegistryGenerations(t *testing.T) {
	r := NewRegistry()
	a := r.Register("a")
	if got, ok := r.Resolve(a); !ok || got != "a" {
		t.Fatalf("Resolve = %v, %v", got, ok)
	}
	if !r.Release(a) || r.Release(a) {
		t.Fatalf("release should succeed exactly once")
	}
	b := r.Register("b")
	if a.Alive() || a.Resolve() != nil {
		t.Fatalf("stale handle must not resolve to the new object")
	}
	if b.Resolve() != "b" || r.Len() != 1 {
		t.Fatalf("unexpected registry state")
	}
	var zero Handle
	if !zero.IsZero() || zero.Alive() || zero.Resolve() != nil {
		t.Fatalf("zero handle should be inert")
	}
	if NewRegistry().Release(b) {
		t.Fatalf("foreign registry must not release the handle")
	}
}

func TestParameterStoresReferentByHandle(t *testing.T) {
	r := NewRegistry()
	w := &window{title: "main"}
	w.handle = r.Register(w)

	c := New()
	mustAdd(t, c, "window")
	if err := c.Set("window", w); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	p, err := c.Parameter("window")
	if err != nil {
		t.Fatalf("Parameter returned error: %v", err)
	}
	if _, ok := p.value.(Handle); !ok {
		t.Fatalf("referent should be stored as a handle, got %T", p.value)
	}
	if c.Get("window") != w {
		t.Fatalf("Get should resolve the referent")
	}

	before := c.Modified()
	if err := c.Set("window", w); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if c.Modified() != before {
		t.Fatalf("same referent must not advance the stamp")
	}

	r.Release(w.handle)
	if c.Get("window") != nil || c.IsValid("window") {
		t.Fatalf("released referent should resolve to nil")
	}
}
