package manifest

import "testing"

func TestIsQuantity(t *testing.T) {
	cases := map[string]bool{
		"10:microliter":   true,
		"0.5:milligram":   true,
		".5:second":       true,
		"-4:celsius":      true,
		"1e-3:liter":      true,
		" 10:microliter ": true,
		"10":              false,
		":microliter":     false,
		"10:":             false,
		"ten:microliter":  false,
		"10:micro liter":  false,
		"10:a:b":          false,
	}
	for raw, want := range cases {
		if got := IsQuantity(raw); got != want {
			t.Fatalf("IsQuantity(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestSplitQuantity(t *testing.T) {
	q := SplitQuantity(" 2.5 : microliter")
	if q.Magnitude != "2.5" || q.Unit != "microliter" {
		t.Fatalf("unexpected quantity %+v", q)
	}
	if got := q.String(); got != "2.5:microliter" {
		t.Fatalf("unexpected string %q", got)
	}
	if q := SplitQuantity("12"); q.Magnitude != "12" || q.Unit != "" {
		t.Fatalf("unexpected quantity %+v", q)
	}
}
