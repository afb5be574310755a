package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Checkout is a temporary clone holding a suite. Dir is the working tree and
// Root the suite directory inside it.
type Checkout struct {
	Dir    string
	Root   string
	Commit string
}

// Close removes the clone.
func (c *Checkout) Close() error {
	if c == nil || c.Dir == "" {
		return nil
	}
	return os.RemoveAll(c.Dir)
}

// Fetch clones url into a fresh temporary directory, checks out ref (a
// branch, tag or commit; HEAD when empty) and returns the checkout with
// Root pointing at subpath inside it. The caller owns the directory and
// must Close it.
func Fetch(ctx context.Context, url, ref, subpath string) (*Checkout, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("suite: empty repository url")
	}
	dir, err := os.MkdirTemp("", "pysub-suite-*")
	if err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}
	checkout := &Checkout{Dir: dir}

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:               url,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = checkout.Close()
		return nil, fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := resolveRef(repo, ref)
	if err != nil {
		_ = checkout.Close()
		return nil, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		_ = checkout.Close()
		return nil, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = checkout.Close()
		return nil, fmt.Errorf("git checkout %s: %w", ref, err)
	}
	checkout.Commit = hash.String()

	root, err := suiteRoot(dir, subpath)
	if err != nil {
		_ = checkout.Close()
		return nil, err
	}
	checkout.Root = root
	return checkout, nil
}

// resolveRef tries ref as written, then as a remote-tracking branch, since
// a fresh clone only has a local branch for the remote HEAD.
func resolveRef(repo *git.Repository, ref string) (*plumbing.Hash, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = "HEAD"
	}
	candidates := []plumbing.Revision{plumbing.Revision(ref)}
	if !strings.HasPrefix(ref, "refs/") && ref != "HEAD" {
		candidates = append(candidates, plumbing.Revision("refs/remotes/origin/"+ref))
	}
	var lastErr error
	for _, rev := range candidates {
		hash, err := repo.ResolveRevision(rev)
		if err == nil {
			return hash, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("resolve revision %s: %w", ref, lastErr)
}

func suiteRoot(dir, subpath string) (string, error) {
	subpath = strings.Trim(strings.TrimSpace(subpath), "/")
	if subpath == "" {
		return dir, nil
	}
	root := filepath.Join(dir, filepath.FromSlash(subpath))
	rel, err := filepath.Rel(dir, root)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("suite: path %q escapes the repository", subpath)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("suite: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("suite: %s is not a directory", subpath)
	}
	return root, nil
}
