package gitsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Sync clones the deck repository at url into localPath if it isn't
// there yet, or pulls the latest decks if it is.
func Sync(ctx context.Context, url, localPath string, progress io.Writer) error {
	_, err := os.Stat(localPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Info("Cloning deck repository", "url", url, "path", localPath)
		_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
			URL:      url,
			Progress: progress,
		})
		if err != nil {
			return fmt.Errorf("failed to clone repo %s: %w", url, err)
		}
		slog.Info("Clone successful", "path", localPath)
	case err == nil:
		slog.Info("Pulling deck repository", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repo at %s: %w", localPath, err)
		}

		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree for repo at %s: %w", localPath, err)
		}

		err = worktree.PullContext(ctx, &git.PullOptions{
			RemoteName: "origin",
			Progress:   progress,
		})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to pull changes for repo at %s: %w", localPath, err)
		}
		slog.Info("Pull successful (or already up-to-date)", "path", localPath)
	default:
		return fmt.Errorf("error checking path %s: %w", localPath, err)
	}
	return nil
}

// ErrUnsupportedURL is returned for repository URLs that are neither
// http(s) nor scp-style user@host:path.
var ErrUnsupportedURL = errors.New("unsupported repository URL")

// LocalPath maps a deck repository URL to a checkout directory under
// baseDir, e.g. git@github.com:me/decks.git becomes baseDir/github.com/me/decks.
func LocalPath(baseDir, repoURL string) (string, error) {
	if u, err := url.Parse(repoURL); err == nil && (u.Scheme == "https" || u.Scheme == "http") && u.Host != "" {
		return checkoutDir(baseDir, u.Host, u.Path), nil
	}

	// scp form: user@host:path, with no scheme and exactly one colon.
	userHost, repoPath, ok := strings.Cut(repoURL, ":")
	if !ok || strings.Contains(repoPath, ":") {
		return "", fmt.Errorf("%q: %w", repoURL, ErrUnsupportedURL)
	}
	_, host, ok := strings.Cut(userHost, "@")
	if !ok || host == "" || strings.Contains(host, "@") || repoPath == "" {
		return "", fmt.Errorf("%q: %w", repoURL, ErrUnsupportedURL)
	}
	return checkoutDir(baseDir, host, repoPath), nil
}

func checkoutDir(baseDir, host, repoPath string) string {
	return filepath.Join(baseDir, host, strings.TrimSuffix(repoPath, ".git"))
}
