// Package records defines the data model shared by the fingerprint and
// resolve stages: an ordered dataset of text records carrying the raw input
// text alongside its derived fingerprint key and canonical form.
package records

// Record is a single row of the dataset. RawText is the immutable input
// identity; Key and CanonicalText are derived and never hand-edited.
type Record struct {
	// RawText is the original text exactly as read from the input.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Key is the normalized fingerprint derived from RawText. Two records
	// with equal keys are considered near-duplicates of each other.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// CanonicalText is the representative text chosen for the record's
	// fingerprint group. It is always the RawText of some record in the
	// same group, never a synthesized string.
	CanonicalText string `json:"canonical_text,omitempty" yaml:"canonical_text,omitempty"`
}

// Dataset is an ordered sequence of records. Row position is the implicit
// identity; there is no uniqueness constraint on RawText.
type Dataset []Record

// Texts returns the raw texts of the dataset in row order.
func (d Dataset) Texts() []string {
	texts := make([]string, len(d))
	for i, r := range d {
		texts[i] = r.RawText
	}
	return texts
}

// Clone returns a copy of the dataset so stages can derive new columns
// without mutating their input.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// FromTexts builds a dataset from raw texts, leaving the derived fields
// empty.
func FromTexts(texts []string) Dataset {
	ds := make(Dataset, len(texts))
	for i, t := range texts {
		ds[i] = Record{RawText: t}
	}
	return ds
}
