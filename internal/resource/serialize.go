package resource

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/fvdlfvdl/bpftrace/internal/types"
)

// schemaVersion guards the on-disk envelope. Bump it whenever the
// Resources layout changes incompatibly.
const schemaVersion = 1

type envelope struct {
	Version   int       `msgpack:"version"`
	Resources Resources `msgpack:"resources"`
}

// Marshal encodes the resources with their schema version.
func Marshal(res *Resources) ([]byte, error) {
	b, err := msgpack.Marshal(envelope{Version: schemaVersion, Resources: *res})
	if err != nil {
		return nil, fmt.Errorf("encode resources: %w", err)
	}
	return b, nil
}

// Unmarshal decodes bytes produced by Marshal, rejecting unknown
// schema versions.
func Unmarshal(b []byte) (*Resources, error) {
	var env envelope
	if err := msgpack.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	if env.Version != schemaVersion {
		return nil, fmt.Errorf("decode resources: schema version %d, want %d",
			env.Version, schemaVersion)
	}
	res := env.Resources
	if res.Maps == nil {
		res.Maps = make(map[string]MapInfo)
	}
	if res.StackTypes == nil {
		res.StackTypes = make(map[string]types.StackType)
	}
	return &res, nil
}

// Save writes the resources to path atomically: the encoding lands in
// a temp file next to the target and is renamed over it, so readers
// never observe a partial file.
func Save(path string, res *Resources) error {
	b, err := Marshal(res)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save resources: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("save resources: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save resources: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save resources: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save resources: %w", err)
	}
	return nil
}

// Load reads resources previously written by Save.
func Load(path string) (*Resources, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	return Unmarshal(b)
}
