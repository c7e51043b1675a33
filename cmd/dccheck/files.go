package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/term"

	"github.com/foundry-zero/dccheck/internal/config"
)

// documentPattern selects resolved-module documents inside directories.
const documentPattern = "**/*.pyast.json"

// expandArgs turns the command arguments into the list of files to check.
// Directories expand to the documents below them in lexical order; file
// arguments are kept as given, even when missing, so that they surface as
// input errors. Paths matching an exclude pattern are dropped.
func expandArgs(args, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			if !excluded(arg, "", exclude) {
				files = append(files, arg)
			}
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(arg), documentPattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("searching %s: %w", arg, err)
		}
		slices.Sort(matches)
		for _, m := range matches {
			path := filepath.Join(arg, filepath.FromSlash(m))
			if !excluded(path, m, exclude) {
				files = append(files, path)
			}
		}
	}
	return files, nil
}

// excluded reports whether path, or its form relative to the searched
// directory, matches any of the patterns.
func excluded(path, rel string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if rel != "" {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}

// useColor resolves the color mode against the output writer.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
