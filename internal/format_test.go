package internal

import (
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every Go source file of the module is kept gofmt clean.
func TestGofmt(t *testing.T) {
	assert := assert.New(t)

	root := ".."
	count := 0
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && (strings.HasPrefix(entry.Name(), "_") || strings.HasPrefix(entry.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		formatted, err := format.Source(source)
		if assert.NoError(err, path) {
			assert.Equal(string(formatted), string(source), "%v is not gofmt clean", path)
		}
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Greater(count, 0)
}
