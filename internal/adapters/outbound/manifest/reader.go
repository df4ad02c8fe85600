package manifest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomciopaluch2000pl/landing-zone/internal/domain"
)

// XMLReader implements domain.ManifestReader for B.audit.xml documents.
type XMLReader struct{}

// New creates an XMLReader.
func New() *XMLReader { return &XMLReader{} }

type fileElement struct {
	FileName    *string `xml:"FileName"`
	RecordCount *string `xml:"RecordCount"`
}

// CheckWellFormed reports whether the document parses as XML with exactly
// one root element. It does not look at the content.
func (r *XMLReader) CheckWellFormed(path string) error {
	return walk(path, nil)
}

// Read parses the manifest. Metadata comes from direct children of the root;
// file entries come from File elements at any depth. A repeated metadata
// element keeps its first value.
func (r *XMLReader) Read(path string) (*domain.Manifest, error) {
	m := &domain.Manifest{}
	seen := map[string]bool{}

	err := walk(path, func(dec *xml.Decoder, t xml.StartElement, depth int) (bool, error) {
		if t.Name.Local == "File" {
			var fe fileElement
			if err := dec.DecodeElement(&fe, &t); err != nil {
				return true, err
			}
			entry, err := toEntry(fe)
			if err != nil {
				return true, err
			}
			m.Entries = append(m.Entries, entry)
			return true, nil
		}

		if depth != 2 {
			return false, nil
		}
		target := metadataField(m, t.Name.Local)
		if target == nil {
			return false, nil
		}
		var text string
		if err := dec.DecodeElement(&text, &t); err != nil {
			return true, err
		}
		if !seen[t.Name.Local] {
			seen[t.Name.Local] = true
			*target = text
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// outsideRoot is what may surround the root element: XML whitespace and a
// byte order mark.
const outsideRoot = "\ufeff \t\r\n"

// startFunc handles a start element at the given depth (root is 1). It
// returns true when it consumed the element through its end tag.
type startFunc func(dec *xml.Decoder, t xml.StartElement, depth int) (bool, error)

// walk tokenizes the document at path and enforces a single root element
// with no character data outside it. onStart may be nil.
func walk(path string, onStart startFunc) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	malformed := func(err error) error {
		return &domain.MalformedDocumentError{Path: path, Err: err}
	}

	dec := xml.NewDecoder(f)
	depth := 0
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && sawRoot {
				return malformed(fmt.Errorf("extra root element <%s>", t.Name.Local))
			}
			depth++
			sawRoot = true

			if onStart == nil {
				continue
			}
			consumed, err := onStart(dec, t, depth)
			if err != nil {
				return malformed(err)
			}
			if consumed {
				depth--
			}
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.Trim(t, outsideRoot)) > 0 {
				if sawRoot {
					return malformed(errors.New("text after root element"))
				}
				return malformed(errors.New("text before root element"))
			}
		}
	}

	if !sawRoot {
		return malformed(errors.New("no root element"))
	}
	return nil
}

func metadataField(m *domain.Manifest, name string) *string {
	switch name {
	case "SubmissionBaseName":
		return &m.BaseName
	case "SubmissionSequenceNumber":
		return &m.SequenceNumber
	case "SubmissionVersion":
		return &m.Version
	}
	return nil
}

// toEntry converts a File element. A missing RecordCount is 0; a present one
// must be a non-negative integer.
func toEntry(fe fileElement) (domain.ManifestEntry, error) {
	var entry domain.ManifestEntry
	if fe.FileName != nil {
		entry.FileName = strings.TrimSpace(*fe.FileName)
	}

	if fe.RecordCount == nil {
		return entry, nil
	}

	raw := strings.TrimSpace(*fe.RecordCount)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return entry, fmt.Errorf("invalid RecordCount %q for file %q", raw, entry.FileName)
	}
	if n < 0 {
		return entry, fmt.Errorf("negative RecordCount %d for file %q", n, entry.FileName)
	}
	entry.ExpectedRecordCount = n
	return entry, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path}
		}
		return nil, err
	}
	return f, nil
}
