package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/cardtally/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImportPath(t *testing.T) {
	root := t.TempDir()
	decks := filepath.Join(root, "decks")
	require.NoError(t, os.MkdirAll(filepath.Join(decks, "nested"), 0o755))
	for _, name := range []string{"b.txt", "a.txt", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(decks, name), []byte("t,d,0\n"), 0o644))
	}
	plain := filepath.Join(root, "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("t,d,0\n"), 0o644))

	testCases := []struct {
		name    string
		input   string
		baseDir string
		want    string
		wantErr bool
	}{
		{name: "regular file", input: plain, want: plain},
		{name: "directory picks first deck", input: decks, want: filepath.Join(decks, "a.txt")},
		{name: "wildcard", input: filepath.Join(decks, "b*"), want: filepath.Join(decks, "b.txt")},
		{name: "relative to deck dir", input: "b.txt", baseDir: decks, want: filepath.Join(decks, "b.txt")},
		{name: "missing", input: filepath.Join(root, "nope.txt"), wantErr: true},
		{name: "wildcard without match", input: filepath.Join(root, "*.csv"), wantErr: true},
		{name: "directory without decks", input: filepath.Join(decks, "nested"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveImportPath(tc.input, tc.baseDir)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrFileNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
