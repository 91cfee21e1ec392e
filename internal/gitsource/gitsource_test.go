package gitsource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOrigin creates a repository with one committed deck file.
func newOrigin(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	commitFile(t, dir, wt, "capitals.txt", "capital of France,Paris,0\n")
	return dir, wt
}

func commitFile(t *testing.T, dir string, wt *git.Worktree, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	_, err := wt.Add(name)
	require.NoError(t, err)
	_, err = wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestSync(t *testing.T) {
	ctx := context.Background()
	origin, wt := newOrigin(t)
	local := filepath.Join(t.TempDir(), "decks")

	require.NoError(t, Sync(ctx, origin, local, io.Discard))
	raw, err := os.ReadFile(filepath.Join(local, "capitals.txt"))
	require.NoError(t, err)
	assert.Equal(t, "capital of France,Paris,0\n", string(raw))

	// Nothing new upstream.
	require.NoError(t, Sync(ctx, origin, local, io.Discard))

	commitFile(t, origin, wt, "rivers.txt", "longest river,Nile,0\n")
	require.NoError(t, Sync(ctx, origin, local, io.Discard))
	_, err = os.Stat(filepath.Join(local, "rivers.txt"))
	assert.NoError(t, err, "pull should bring in the new deck")
}

func TestSyncNotARepo(t *testing.T) {
	local := t.TempDir()
	err := Sync(context.Background(), "https://example.invalid/decks.git", local, io.Discard)
	assert.Error(t, err)
}

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "https", url: "https://github.com/me/decks.git", want: filepath.Join("repos", "github.com", "me", "decks")},
		{name: "scp style", url: "git@github.com:me/decks.git", want: filepath.Join("repos", "github.com", "me", "decks")},
		{name: "http without .git", url: "http://example.com/team/decks", want: filepath.Join("repos", "example.com", "team", "decks")},
		{name: "unparseable", url: "not a url", wantErr: true},
		{name: "scp without user", url: "github.com:me/decks.git", wantErr: true},
		{name: "ssh scheme", url: "ssh://git@github.com/me/decks.git", wantErr: true},
		{name: "empty path", url: "git@github.com:", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
