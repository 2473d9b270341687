// util/resources.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

var resourcesFS fs.FS

// SetResourcesDir overrides the directory the navigation database
// resources are loaded from; by default they are looked up next to the
// executable and then in the current working directory.
func SetResourcesDir(dir string) {
	resourcesFS = os.DirFS(dir)
}

func getResourcesFS() fs.FS {
	if path, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(path), "resources")
		if _, err := os.Stat(dir); err == nil {
			return os.DirFS(dir)
		}
	}

	// Try CWD; useful for development and debugging but shouldn't be
	// needed for release builds.
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return os.DirFS(filepath.Join(wd, "resources"))
}

// LoadResource loads the specified file from the resources directory,
// decompressing it if it is zstd compressed. It panics if the file is
// not found; missing resources are pretty much impossible to recover
// from.
func LoadResource(path string) []byte {
	b := LoadRawResource(path)

	if filepath.Ext(path) == ".zst" {
		b2, err := DecompressZstd(b)
		if err != nil {
			panic(err)
		}
		return b2
	}

	return b
}

func LoadRawResource(path string) []byte {
	if resourcesFS == nil {
		resourcesFS = getResourcesFS()
	}

	b, err := fs.ReadFile(resourcesFS, path)
	if err != nil {
		panic(err)
	}
	return b
}

func DecompressZstd(b []byte) ([]byte, error) {
	zr, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return zr.DecodeAll(b, nil)
}
