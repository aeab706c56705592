package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

// FileSet owns the source files of a compilation and resolves byte offsets
// within a Span back into human-readable line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers file content under path and returns a fresh FileID. A new
// FileID is minted even if path was already added, so callers that want
// deduplication must check Lookup first.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// Lookup returns the FileID previously registered for path, if any.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.index[path]
	return id, ok
}

// File returns the File record for id.
func (fs *FileSet) File(id FileID) (File, bool) {
	if int(id) >= len(fs.files) {
		return File{}, false
	}
	return fs.files[id], true
}

// Slice returns the raw bytes covered by span.
func (fs *FileSet) Slice(span Span) []byte {
	f, ok := fs.File(span.File)
	if !ok {
		return nil
	}
	if span.Start > uint32(len(f.Content)) || span.End > uint32(len(f.Content)) || span.Start > span.End {
		return nil
	}
	return f.Content[span.Start:span.End]
}

// Position converts a byte offset within file id into a 1-based line/column.
func (fs *FileSet) Position(id FileID, offset uint32) LineCol {
	f, ok := fs.File(id)
	if !ok {
		return LineCol{}
	}
	line := searchLine(f.LineIdx, offset)
	col := offset - f.LineIdx[line] + 1
	return LineCol{Line: uint32(line) + 1, Col: col}
}

// LineText returns the content of the given 1-based line number, without
// its trailing newline.
func (fs *FileSet) LineText(id FileID, line uint32) string {
	f, ok := fs.File(id)
	if !ok || line == 0 || int(line) > len(f.LineIdx) {
		return ""
	}
	start := f.LineIdx[line-1]
	end := uint32(len(f.Content))
	if int(line) < len(f.LineIdx) {
		end = f.LineIdx[line]
	}
	text := f.Content[start:end]
	text = bytes.TrimRight(text, "\r\n")
	return string(text)
}

func buildLineIndex(content []byte) []uint32 {
	idx := []uint32{0}
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i+1))
		}
	}
	return idx
}

// searchLine returns the 0-based index of the line containing offset.
func searchLine(lineIdx []uint32, offset uint32) int {
	lo, hi := 0, len(lineIdx)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineIdx[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
