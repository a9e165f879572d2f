// Package tabular reads and writes the delimited files that surround the
// keyfold core: an input table exposing at least a raw_text column, the
// two-column cleaned projection, and the full intermediate table kept as a
// diagnostic artifact.
package tabular

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/keyfold/keyfold/pkg/errors"
	"github.com/keyfold/keyfold/pkg/records"
	"github.com/keyfold/keyfold/pkg/resolve"
)

// Column names of the durable artifacts.
const (
	ColumnRawText       = "raw_text"
	ColumnKey           = "key"
	ColumnCanonicalText = "canonical_text"
)

// Options configures delimited file handling.
type Options struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// Read parses a delimited table from r. The first row is a header that must
// contain a raw_text column; additional columns are tolerated and ignored.
// A row without a raw_text cell is fatal: the pipeline cannot proceed
// without its required field.
func Read(r io.Reader, opts Options) (records.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewValidationError(ColumnRawText, nil, "input is empty, header row required")
	}
	if err != nil {
		return nil, errors.WrapParse("csv", "", err)
	}

	rawIdx := -1
	for i, name := range header {
		if name == ColumnRawText {
			rawIdx = i
			break
		}
	}
	if rawIdx < 0 {
		return nil, errors.NewValidationError(ColumnRawText, header, "required column missing from header")
	}

	var ds records.Dataset
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			pe := errors.NewParseError("csv", "", "malformed row", err)
			pe.Line = line
			return nil, pe
		}
		if rawIdx >= len(row) {
			return nil, errors.NewValidationError(ColumnRawText, row, "row has no raw_text cell")
		}
		ds = append(ds, records.Record{RawText: row[rawIdx]})
	}
	return ds, nil
}

// ReadFile reads a delimited table from the file at path.
func ReadFile(path string, opts Options) (records.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return ds, nil
}

// Write writes the two-column cleaned projection (raw_text, canonical_text),
// one row per record in input order.
func Write(w io.Writer, ds records.Dataset, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()

	if err := cw.Write([]string{ColumnRawText, ColumnCanonicalText}); err != nil {
		return errors.WrapIO("write", "", err)
	}
	for _, r := range ds {
		if err := cw.Write([]string{r.RawText, r.CanonicalText}); err != nil {
			return errors.WrapIO("write", "", err)
		}
	}
	cw.Flush()
	return errors.WrapIO("write", "", cw.Error())
}

// WriteIntermediate writes the full three-column table including the
// fingerprint key. This is a diagnostic side artifact, not the primary
// output contract.
func WriteIntermediate(w io.Writer, ds records.Dataset, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()

	if err := cw.Write([]string{ColumnRawText, ColumnKey, ColumnCanonicalText}); err != nil {
		return errors.WrapIO("write", "", err)
	}
	for _, r := range ds {
		if err := cw.Write([]string{r.RawText, r.Key, r.CanonicalText}); err != nil {
			return errors.WrapIO("write", "", err)
		}
	}
	cw.Flush()
	return errors.WrapIO("write", "", cw.Error())
}

// WriteFile writes the cleaned projection to the file at path.
func WriteFile(path string, ds records.Dataset, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return Write(w, ds, opts)
	})
}

// WriteIntermediateFile writes the full intermediate table to the file at
// path.
func WriteIntermediateFile(path string, ds records.Dataset, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteIntermediate(w, ds, opts)
	})
}

// WriteGroupsFile writes the fingerprint groups as a YAML document, a
// human-auditable view of how records collapsed.
func WriteGroupsFile(path string, groups []resolve.Group) error {
	data, err := yaml.Marshal(groups)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}
