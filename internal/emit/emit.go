// Package emit turns a lowered mir.MirModule into on-disk output: the
// default human-readable text form (internal/mir's pretty printer), and an
// optional binary `.mirc` snapshot so golden tests and tooling can reload
// a previously lowered module without re-running C1-C9 (spec.md §6,
// grounded in the teacher's internal/mir/print.go plus its use of
// vmihailenco/msgpack elsewhere in the driver layer for cached artifacts).
package emit

import (
	"bytes"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"corec/internal/mir"
	"corec/internal/types"
)

// WriteText renders m as text to path (default `corec build` output).
func WriteText(path string, m *mir.MirModule, in *types.Interner) error {
	var buf bytes.Buffer
	if err := mir.DumpModule(&buf, m, in); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteSnapshot msgpack-encodes m to path (the `--emit-mirc` `.mirc`
// artifact). The type interner is not part of the snapshot: a `.mirc` file
// is only ever reloaded for inspection/diffing within the same process
// that produced it, never fed back into a later compile, so TypeIDs stay
// meaningful without re-serialising the interner's tables.
func WriteSnapshot(path string, m *mir.MirModule) error {
	b, err := msgpack.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ReadSnapshot decodes a `.mirc` file previously written by WriteSnapshot.
func ReadSnapshot(path string) (*mir.MirModule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m mir.MirModule
	if err := msgpack.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
