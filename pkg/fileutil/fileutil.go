package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

// EnsureDir checks if a given directory plus the following path exist, then creates one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	target := filepath.Join(targetPath...)
	if err := os.MkdirAll(target, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// SanitizeName makes a group key safe to use as a file basename by
// replacing dots with dashes ("epa.gov-1" becomes "epa-gov-1"). Dots are
// the only character that shows up in group keys and clashes with the
// ".seeds.yaml" suffix convention.
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, ".", "-")
}
