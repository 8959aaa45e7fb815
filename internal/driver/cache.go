package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/fvdlfvdl/bpftrace/internal/resource"
)

const cacheAppDir = "bpftrace"

// CacheDir resolves the resource cache directory: $XDG_CACHE_HOME or
// ~/.cache, plus the application subdirectory.
func CacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, cacheAppDir), nil
}

// cachePath keys a cache entry by the script's absolute path, so the
// same script name in two directories cannot collide.
func cachePath(script string) (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(script)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, hex.EncodeToString(sum[:])+".resources"), nil
}

// SaveResources writes a script's analysed resources into the cache.
func SaveResources(script string, res *resource.Resources) error {
	path, err := cachePath(script)
	if err != nil {
		return err
	}
	return resource.Save(path, res)
}

// LoadResources reads a script's cached resources, if present.
func LoadResources(script string) (*resource.Resources, error) {
	path, err := cachePath(script)
	if err != nil {
		return nil, err
	}
	return resource.Load(path)
}
