package corpus

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/internship-faqbot/internal/domain/faq"
)

const maxDocumentBytes = 4 << 20 // 4 MiB

var errDocumentTooLarge = errors.New("corpus document exceeds size limit")

type document struct {
	Entries []faq.Entry `yaml:"entries"`
}

// decodeEntries parses a YAML corpus document of the form
//
//	entries:
//	  - question: ...
//	    answer: ...
func decodeEntries(data []byte) ([]faq.Entry, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, faq.ErrEmptyCorpus
		}
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	if err := faq.ValidateEntries(doc.Entries); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentBytes {
		return nil, errDocumentTooLarge
	}
	return data, nil
}
