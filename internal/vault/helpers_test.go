package vault

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRoot is a Root whose permission answers are scripted.
type fakeRoot struct {
	path       string
	query      Permission
	request    Permission
	queryErr   error
	requestErr error
	queries    int
	requests   int
}

func (r *fakeRoot) Path() string { return r.path }

func (r *fakeRoot) QueryPermission(context.Context) (Permission, error) {
	r.queries++
	return r.query, r.queryErr
}

func (r *fakeRoot) RequestPermission(context.Context) (Permission, error) {
	r.requests++
	return r.request, r.requestErr
}

// memGrants is an in-memory GrantStore.
type memGrants struct {
	granted map[string]bool
	err     error
}

func newMemGrants() *memGrants {
	return &memGrants{granted: map[string]bool{}}
}

func (g *memGrants) Granted(root string) (bool, error) {
	return g.granted[root], g.err
}

func (g *memGrants) SetGranted(root string, granted bool) error {
	if g.err != nil {
		return g.err
	}
	g.granted[root] = granted
	return nil
}

// answer is a Prompter with a fixed reply.
type answer struct {
	yes   bool
	err   error
	asked int
}

func (a *answer) Confirm(context.Context, string) (bool, error) {
	a.asked++
	return a.yes, a.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func fixedTime() time.Time {
	return time.Date(2024, time.March, 7, 14, 30, 0, 0, time.UTC)
}

// listTree returns every path under root, relative to it and sorted.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.Walk(root, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(paths)
	return paths
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
