package main

import (
	"fmt"
	"os"

	"wrapgen/internal/manifest"
)

// loadManifest loads the manifest named by args, or the nearest wrapgen.toml
// above the working directory.
func loadManifest(args []string) (*manifest.Manifest, error) {
	if len(args) > 0 && args[0] != "" {
		return manifest.Load(args[0])
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	path, ok, err := manifest.Find(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no %s found in %s or its parents; pass a manifest path", manifest.DefaultFileName, wd)
	}
	return manifest.Load(path)
}

// manifestSubject names the manifest a command was pointed at.
func manifestSubject(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return manifest.DefaultFileName
}
