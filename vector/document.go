package vector

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html/charset"
)

// VectorElement is the local name of the elements holding vectors.
const VectorElement = "vector"

// DocumentDecoder scans an XML document for vector elements. Use it like a
// bufio.Scanner:
//
//	dec := vector.NewDocumentDecoder(r, 34)
//	for dec.Next() {
//		use(dec.Vector())
//	}
//	if err := dec.Err(); err != nil { ... }
//
// Only the direct character data of a vector element is decoded, child
// elements are skipped. Elements that do not decode into expectedLength
// numbers are dropped silently. A scan can't be restarted, open the
// document again instead.
type DocumentDecoder struct {
	dec            *xml.Decoder
	expectedLength int
	log            *slog.Logger

	vec  FeatureVector
	text string
	seen int
	err  error
	done bool
}

// NewDocumentDecoder returns a decoder reading the document from r.
// Documents declaring a non UTF-8 encoding are transcoded.
func NewDocumentDecoder(r io.Reader, expectedLength int) *DocumentDecoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &DocumentDecoder{
		dec:            dec,
		expectedLength: expectedLength,
		log:            slog.Default(),
	}
}

// SetLogger replaces the logger receiving the skipped elements.
func (d *DocumentDecoder) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// Next advances to the next valid vector. It returns false at the end of the
// document or when the document is broken, see Err.
func (d *DocumentDecoder) Next() bool {
	if d.done {
		return false
	}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			d.finish(err)
			return false
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != VectorElement {
			continue
		}
		d.seen++
		text, err := d.elementText()
		if err != nil {
			d.finish(err)
			return false
		}
		v, err := DecodeLine(text, d.expectedLength)
		if err != nil {
			d.log.Debug("skipping vector element", "element", d.seen, "error", err)
			continue
		}
		d.vec = v
		d.text = strings.TrimSpace(text)
		return true
	}
}

// elementText collects the character data up to the end of the current
// element, skipping nested elements.
func (d *DocumentDecoder) elementText() (string, error) {
	var b strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := d.dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

func (d *DocumentDecoder) finish(err error) {
	d.done = true
	d.vec = nil
	d.text = ""
	if errors.Is(err, io.EOF) {
		return
	}
	d.err = &DocumentError{Offset: d.dec.InputOffset(), Err: err}
}

// Vector returns the vector found by the last successful Next.
func (d *DocumentDecoder) Vector() FeatureVector {
	return d.vec
}

// Text returns the trimmed text the current vector was decoded from.
func (d *DocumentDecoder) Text() string {
	return d.text
}

// Err returns the error that ended the scan, nil at a normal end of document.
func (d *DocumentDecoder) Err() error {
	return d.err
}

// DecodeDocument collects every valid vector of the document. On a broken
// document the vectors found before the break are returned with the error.
func DecodeDocument(r io.Reader, expectedLength int) ([]FeatureVector, error) {
	var out []FeatureVector
	dec := NewDocumentDecoder(r, expectedLength)
	for dec.Next() {
		out = append(out, dec.Vector())
	}
	return out, dec.Err()
}
