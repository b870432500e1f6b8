package bubble_adapter

import (
	"strings"

	"github.com/restpad/editview/core"
)

// Document is a line-based text buffer implementing core.Document. It stands
// in for the host widget's buffer: the engine only reads it, while the
// adapter mutates it and reports every mutation to the layout cache.
//
// Undo and redo work on whole-buffer snapshots taken before each mutation.
type Document struct {
	lines    []string
	revision uint64

	undo []snapshot
	redo []snapshot
}

type snapshot struct {
	lines    []string
	revision uint64
}

// NewDocument builds a document from raw content. An empty input yields a
// single empty line, never zero lines.
func NewDocument(content string) *Document {
	d := &Document{}
	d.Reset(content)
	return d
}

// Reset replaces the whole buffer and clears the undo history.
func (d *Document) Reset(content string) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	d.lines = strings.Split(content, "\n")
	if len(d.lines) == 0 {
		d.lines = []string{""}
	}
	d.undo = nil
	d.redo = nil
	d.revision++
}

// Line returns the 0-based logical line without its trailing newline.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// LineCount returns the number of logical lines, always at least one.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Revision returns the monotonic mutation counter.
func (d *Document) Revision() uint64 {
	return d.revision
}

// Content joins the buffer back into a single string.
func (d *Document) Content() string {
	return strings.Join(d.lines, "\n")
}

// ByteOffset converts a (line, column) position into a document-wide byte
// offset, counting one byte per line separator. It is the coordinate space
// core.MatchSpan uses.
func (d *Document) ByteOffset(line, col int) int {
	off := 0
	for i := 0; i < line && i < len(d.lines); i++ {
		off += len(d.lines[i]) + 1
	}
	return off + col
}

// SetLine replaces one line in place.
func (d *Document) SetLine(i int, text string) error {
	if i < 0 || i >= len(d.lines) {
		return core.ErrLineOutOfRange
	}
	d.checkpoint()
	d.lines[i] = text
	d.revision++
	return nil
}

// InsertLine inserts a new line so that it becomes line i.
func (d *Document) InsertLine(i int, text string) error {
	if i < 0 || i > len(d.lines) {
		return core.ErrLineOutOfRange
	}
	d.checkpoint()
	d.lines = append(d.lines[:i], append([]string{text}, d.lines[i:]...)...)
	d.revision++
	return nil
}

// RemoveLine deletes line i. The final line cannot be removed, only emptied.
func (d *Document) RemoveLine(i int) error {
	if i < 0 || i >= len(d.lines) {
		return core.ErrLineOutOfRange
	}
	d.checkpoint()
	if len(d.lines) == 1 {
		d.lines[0] = ""
	} else {
		d.lines = append(d.lines[:i], d.lines[i+1:]...)
	}
	d.revision++
	return nil
}

// SplitLine breaks line i at byte column col, producing two lines.
func (d *Document) SplitLine(i, col int) error {
	if i < 0 || i >= len(d.lines) {
		return core.ErrLineOutOfRange
	}
	line := d.lines[i]
	if col < 0 || col > len(line) {
		return core.ErrLineOutOfRange
	}
	d.checkpoint()
	rest := line[col:]
	d.lines[i] = line[:col]
	d.lines = append(d.lines[:i+1], append([]string{rest}, d.lines[i+1:]...)...)
	d.revision++
	return nil
}

// JoinLines appends line i+1 onto line i and removes it.
func (d *Document) JoinLines(i int) error {
	if i < 0 || i+1 >= len(d.lines) {
		return core.ErrLineOutOfRange
	}
	d.checkpoint()
	d.lines[i] += d.lines[i+1]
	d.lines = append(d.lines[:i+1], d.lines[i+2:]...)
	d.revision++
	return nil
}

// Undo restores the snapshot taken before the most recent mutation. It
// reports whether anything changed.
func (d *Document) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	s := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = append(d.redo, d.snapshot())
	d.lines = s.lines
	d.revision++
	return true
}

// Redo re-applies the most recently undone mutation.
func (d *Document) Redo() bool {
	if len(d.redo) == 0 {
		return false
	}
	s := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.undo = append(d.undo, d.snapshot())
	d.lines = s.lines
	d.revision++
	return true
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool { return len(d.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool { return len(d.redo) > 0 }

// checkpoint pushes the current state onto the undo stack. Any new mutation
// invalidates the redo branch.
func (d *Document) checkpoint() {
	d.undo = append(d.undo, d.snapshot())
	d.redo = nil
}

func (d *Document) snapshot() snapshot {
	lines := make([]string, len(d.lines))
	copy(lines, d.lines)
	return snapshot{lines: lines, revision: d.revision}
}
