package corpus

import (
	"context"
	"fmt"
	"os"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

// BuiltinSource serves the compiled-in internship FAQ.
type BuiltinSource struct{}

// NewBuiltinSource constructs the default corpus source.
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Load implements faq.CorpusSource.
func (BuiltinSource) Load(context.Context) ([]faq.Entry, error) {
	return faq.DefaultEntries(), nil
}

// Describe implements faq.CorpusSource.
func (BuiltinSource) Describe() string {
	return "builtin"
}

// FileSource reads a YAML corpus from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource constructs a source for the YAML document at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the watched document path.
func (s *FileSource) Path() string {
	return s.path
}

// Load implements faq.CorpusSource.
func (s *FileSource) Load(context.Context) ([]faq.Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	entries, err := decodeEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return entries, nil
}

// Describe implements faq.CorpusSource.
func (s *FileSource) Describe() string {
	return "file:" + s.path
}

var (
	_ faq.CorpusSource = BuiltinSource{}
	_ faq.CorpusSource = (*FileSource)(nil)
)
