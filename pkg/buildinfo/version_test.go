package buildinfo

import (
	"strings"
	"testing"
)

func TestStringAndTemplate(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	defer func() { Version, Commit, Date = old[0], old[1], old[2] }()

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"

	if got := String(); got != "version: v1.2.3\ncommit: abc123\nbuilt: 2026-01-02T03:04:05Z" {
		t.Errorf("String() = %q", got)
	}
	tmpl := Template()
	for _, want := range []string{"{{.Name}}", "v1.2.3", "abc123"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
