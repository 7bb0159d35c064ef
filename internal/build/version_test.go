package build_test

import (
	"testing"

	"github.com/edgi-govdata-archiving/seedgen/internal/build"
)

func TestFullVersion(t *testing.T) {
	if build.FullVersion() != build.Version+"+"+build.Commit {
		t.Errorf("unexpected full version %q", build.FullVersion())
	}
}
