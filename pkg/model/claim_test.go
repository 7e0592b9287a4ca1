package model

import "testing"

func TestIsAbsent(t *testing.T) {
	cases := []struct {
		v    ClaimValue
		want bool
	}{
		{Scalar(""), true},
		{Scalar("   "), true},
		{Scalar("None"), true},
		{Scalar(" n/a "), true},
		{Scalar("N/A"), true},
		{Scalar("Galilee"), false},
		{Ref("peter"), false},
		{Range("30-33 CE"), false},
	}
	for _, c := range cases {
		if got := IsAbsent(c.v); got != c.want {
			t.Errorf("IsAbsent(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestScalarNormalizedFoldsCaseAndWhitespace(t *testing.T) {
	a := Scalar("  Son of God  ")
	b := Scalar("son of god")
	if a.Normalized() != b.Normalized() {
		t.Fatalf("expected equal normalized forms, got %q and %q", a.Normalized(), b.Normalized())
	}
}

func TestRefNormalizedIsIdentity(t *testing.T) {
	r := Ref("peter")
	if r.Normalized() != "peter" {
		t.Fatalf("expected identity normalization for Ref, got %q", r.Normalized())
	}
}
