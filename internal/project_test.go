package internal_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRoot walks up from the working directory until it finds go.mod.
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err, "failed to get working directory")

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod found in any parent directory)")
		}
		dir = parent
	}
}

// hasPackageDecl reports whether any .go file in dir declares the package.
func hasPackageDecl(t *testing.T, dir, decl string) bool {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "reading %s", dir)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		if strings.Contains(string(data), decl) {
			return true
		}
	}
	return false
}

func TestPackageLayout(t *testing.T) {
	t.Parallel()

	root := projectRoot(t)

	packages := []struct {
		dir  string
		decl string
	}{
		{dir: ".", decl: "package glint"},
		{dir: "terminal", decl: "package terminal"},
		{dir: "live", decl: "package live"},
		{dir: "progress", decl: "package progress"},
		{dir: "internal/cli", decl: "package cli"},
		{dir: "internal/logging", decl: "package logging"},
		{dir: "internal/buildinfo", decl: "package buildinfo"},
		{dir: "cmd/glint", decl: "package main"},
	}

	for _, pkg := range packages {
		pkg := pkg
		t.Run(pkg.dir, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(root, pkg.dir)
			info, err := os.Stat(dir)
			require.NoError(t, err, "%s does not exist", pkg.dir)
			assert.True(t, info.IsDir())
			assert.True(t, hasPackageDecl(t, dir, pkg.decl), "%s lacks a file declaring %q", pkg.dir, pkg.decl)
		})
	}
}

// The module root must not accumulate stray top-level packages: everything
// outside the root package lives under terminal/, live/, progress/,
// internal/, or cmd/.
func TestNoUnexpectedTopLevelDirs(t *testing.T) {
	t.Parallel()

	allowed := map[string]bool{
		"terminal": true, "live": true, "progress": true,
		"internal": true, "cmd": true, "_examples": true,
	}

	entries, err := os.ReadDir(projectRoot(t))
	require.NoError(t, err)
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		assert.True(t, allowed[e.Name()], "unexpected top-level directory %q", e.Name())
	}
}
