package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v1.2.3"

	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", got)
	}
	if got := CacheScope(); got != "netweave:v1.2.3:" {
		t.Errorf("CacheScope() = %q", got)
	}
	if got := Get(); got.Version != "v1.2.3" || got.Commit != Commit {
		t.Errorf("Get() = %+v", got)
	}
}
