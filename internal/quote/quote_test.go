package quote

import "testing"

func TestNextWraps(t *testing.T) {
	quotes := []Quote{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	r := NewRotator(quotes)

	want := []string{"b", "c", "a", "b"}
	for i, w := range want {
		q, ok := r.Next()
		if !ok {
			t.Fatalf("step %d: Next reported empty list", i)
		}
		if q.Text != w {
			t.Errorf("step %d: got %q, want %q", i, q.Text, w)
		}
	}
	if r.Index() != 1 {
		t.Errorf("Index = %d, want 1", r.Index())
	}
}

func TestEmptyRotator(t *testing.T) {
	r := NewRotator(nil)
	if _, ok := r.Current(); ok {
		t.Error("Current on empty list reported ok")
	}
	if _, ok := r.Next(); ok {
		t.Error("Next on empty list reported ok")
	}
	if r.Index() != 0 {
		t.Errorf("Index = %d, want 0", r.Index())
	}
}

func TestDefaultsStartAtFirst(t *testing.T) {
	r := NewRotator(Defaults)
	q, ok := r.Current()
	if !ok || q != Defaults[0] {
		t.Errorf("Current = %+v, %v; want first default", q, ok)
	}
}
