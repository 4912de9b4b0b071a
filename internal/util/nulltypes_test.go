package util

import "testing"

func TestNullStringFromValue(t *testing.T) {
	ns := NullStringFromValue("hello")
	if !ns.Valid || ns.String != "hello" {
		t.Errorf("expected valid NullString with hello, got %+v", ns)
	}

	ns = NullStringFromValue("")
	if ns.Valid {
		t.Errorf("expected invalid NullString for empty input, got %+v", ns)
	}
}

func TestStringFromNull(t *testing.T) {
	if got := StringFromNull(NullStringFromValue("x")); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
	if got := StringFromNull(NullStringFromValue("")); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
