package test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path of a fresh SQLite database file in a directory
// that is removed when the test ends.
func TmpFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), fmt.Sprintf("ledger-%s.db", uuid.NewString()))
}
