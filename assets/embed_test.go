package assets

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	lines, err := Banner()
	if err != nil {
		t.Fatalf("banner: %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("banner has %d lines, want 4", len(lines))
	}
	for i, l := range lines {
		if l == "" {
			t.Errorf("line %d empty", i)
		}
		if strings.HasPrefix(l, "#") {
			t.Errorf("comment line leaked: %q", l)
		}
	}
}
