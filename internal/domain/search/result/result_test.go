package result

import "testing"

func TestNew(t *testing.T) {
	attrs := map[string]string{"visibility": "PRIVATE"}
	r := New("catalog", "p1", "Sample Project", "project", 1.5, attrs)

	if r.ID() != "p1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Name() != "Sample Project" {
		t.Errorf("Name() = %q", r.Name())
	}
	if r.Type() != "project" {
		t.Errorf("Type() = %q", r.Type())
	}
	if r.Score() != 1.5 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Realm() != "catalog" {
		t.Errorf("Realm() = %q", r.Realm())
	}
	if r.Attribute("visibility") != "PRIVATE" {
		t.Errorf("Attribute(visibility) = %q", r.Attribute("visibility"))
	}
}

func TestAttribute_NilMap(t *testing.T) {
	r := New("users", "u1", "a@b.c", "user", 0, nil)
	if got := r.Attribute("anything"); got != "" {
		t.Errorf("Attribute() = %q, want empty", got)
	}
}

func TestKey(t *testing.T) {
	a := New("catalog", "x", "A", "component", 1, nil)
	b := New("catalog", "x", "A (renamed)", "component", 3, nil)
	c := New("users", "x", "A", "user", 1, nil)

	if a.Key() != b.Key() {
		t.Error("same realm and id must share a key regardless of score or name")
	}
	if a.Key() == c.Key() {
		t.Error("different realms must not share a key")
	}
}
