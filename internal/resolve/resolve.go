// Package resolve turns record locations back into live documents.
//
// A location is "dead" when resolution fails, not when some field is nil.
// The two failure modes are distinguished: the owning document may be gone
// from the live set (or from disk), or the document may still exist while
// the recorded line no longer does.
package resolve

import (
	"errors"
	"fmt"
	"os"

	"github.com/aldertree/rolo/internal/contact"
	"github.com/aldertree/rolo/internal/outline"
)

// ErrDocGone means the owning document is no longer part of the live set
// or its backing file disappeared.
var ErrDocGone = errors.New("document no longer available")

// ErrLineGone means the document exists but the recorded line is past its
// end.
var ErrLineGone = errors.New("location past end of document")

// FileSet is the live document set. The cache registers every document it
// scans; callers resolve record locations against it.
type FileSet struct {
	docs map[string]*outline.Document
}

// NewFileSet returns an empty live set.
func NewFileSet() *FileSet {
	return &FileSet{docs: make(map[string]*outline.Document)}
}

// Add registers a parsed document as live.
func (s *FileSet) Add(doc *outline.Document) {
	s.docs[doc.Path] = doc
}

// Remove discards a document from the live set. Records pointing into it
// become dead.
func (s *FileSet) Remove(path string) {
	delete(s.docs, path)
}

// Clear empties the live set, e.g. ahead of a full rescan.
func (s *FileSet) Clear() {
	s.docs = make(map[string]*outline.Document)
}

// Paths returns the registered document paths.
func (s *FileSet) Paths() []string {
	out := make([]string, 0, len(s.docs))
	for p := range s.docs {
		out = append(out, p)
	}
	return out
}

// Resolve returns the live document a location points into.
func (s *FileSet) Resolve(loc contact.Location) (*outline.Document, error) {
	doc, ok := s.docs[loc.Doc]
	if !ok {
		return nil, fmt.Errorf("%s: %w", loc.Doc, ErrDocGone)
	}
	if _, err := os.Stat(loc.Doc); err != nil {
		return nil, fmt.Errorf("%s: %w", loc.Doc, ErrDocGone)
	}
	if loc.Line < 1 || loc.Line > doc.NumLines {
		return nil, fmt.Errorf("%s:%d: %w", loc.Doc, loc.Line, ErrLineGone)
	}
	return doc, nil
}

// Dead reports whether the location no longer resolves.
func (s *FileSet) Dead(loc contact.Location) bool {
	_, err := s.Resolve(loc)
	return err != nil
}
