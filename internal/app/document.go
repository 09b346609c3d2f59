package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/blockwrap/internal/engine"
	"github.com/dshills/blockwrap/internal/engine/segment"
)

// Document is one pane's content: an editor and where it came from.
type Document struct {
	// ID identifies the document in logs.
	ID string

	// Path is the file the document was loaded from, empty for scratch
	// documents.
	Path string

	// Name is shown in the pane title.
	Name string

	Editor *engine.Editor
}

// NewDocument creates a document over content.
func NewDocument(name, content string, opts ...engine.Option) *Document {
	return &Document{
		ID:     uuid.New().String(),
		Name:   name,
		Editor: engine.New(Normalize(content), opts...),
	}
}

// ScratchDocument creates the placeholder document for pane i.
func ScratchDocument(i int, opts ...engine.Option) *Document {
	content := fmt.Sprintf("Pane %d:\nEdit this text.\nUse Ctrl+W to switch panes.\n", i+1)
	return NewDocument(fmt.Sprintf("pane %d", i+1), content, opts...)
}

// OpenDocument loads a file.
func OpenDocument(path string, opts ...engine.Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &OperationError{Op: "open", Target: path, Err: err}
	}
	doc := NewDocument(filepath.Base(path), string(data), opts...)
	doc.Path = path
	return doc, nil
}

// Normalize prepares text for the editor: invalid UTF-8 is replaced, line
// endings become '\n', tabs expand to one indent unit and the result is
// in NFC so composed and decomposed input wrap identically.
func Normalize(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", segment.IndentUnit))
	return norm.NFC.String(s)
}
