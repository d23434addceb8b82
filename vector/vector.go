// Package vector decodes untrusted text into fixed length feature vectors.
//
// A single line is decoded strictly: the caller gets the first problem back.
// A document is decoded leniently: entries that don't decode are skipped and
// the rest of the document is still scanned.
package vector

import (
	"errors"
	"strconv"
	"strings"
)

// Delimiter separates the features of a vector.
const Delimiter = ","

// FeatureVector is an ordered list of feature values. The order is the
// feature order the model was trained with.
type FeatureVector []float32

// String formats the vector as a line accepted by DecodeLine.
func (v FeatureVector) String() string {
	var b strings.Builder
	for i, f := range v {
		if i != 0 {
			b.WriteString(Delimiter)
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	return b.String()
}

// DecodeLine decodes a comma delimited line of exactly expectedLength numbers.
// Whitespace around the numbers is ignored. It fails with a *DecodeError of
// kind WrongLength when the count is off, or of kind MalformedValue for the
// first token that is not a number. Numbers too large for a float32 decode
// as ±Inf.
func DecodeLine(text string, expectedLength int) (FeatureVector, error) {
	tokens := strings.Split(text, Delimiter)
	if len(tokens) != expectedLength {
		return nil, &DecodeError{Kind: WrongLength, Expected: expectedLength, Actual: len(tokens)}
	}
	v := make(FeatureVector, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		f, err := strconv.ParseFloat(tok, 32)
		// out of range values keep the ±Inf or 0 ParseFloat returned
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &DecodeError{Kind: MalformedValue, Index: i, Token: tok, Err: err}
		}
		v[i] = float32(f)
	}
	return v, nil
}
