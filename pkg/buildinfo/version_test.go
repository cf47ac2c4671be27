package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	tpl := Template()
	if !strings.HasPrefix(tpl, "{{.Name}} version: v1.2.3\n") {
		t.Errorf("Template() = %q", tpl)
	}
	if !strings.Contains(String(), "go: go") {
		t.Errorf("String() should include the Go version: %q", String())
	}
}
