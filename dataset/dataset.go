// Package dataset loads delimited sample files where each row is an
// observation and one column holds the class label.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Options controls how a file is parsed.
type Options struct {
	// Delimiter separates fields. Defaults to a tab.
	Delimiter string
	// Header marks the first row as column names.
	Header bool
	// LabelColumn is the index of the label column; negative values count
	// from the end, so -1 is the last column.
	LabelColumn int
}

// DefaultOptions matches the tab-separated, label-last layout.
func DefaultOptions() Options {
	return Options{Delimiter: "\t", LabelColumn: -1}
}

// Dataset holds features column-major so each feature is a sample vector.
type Dataset struct {
	Names     []string
	Features  [][]float64
	Labels    []float64
	LabelName string
}

// ErrEmpty is returned when a file holds no observations.
var ErrEmpty = errors.New("dataset has no observations")

// Load reads the dataset at path.
func Load(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses a dataset from r.
func Read(r io.Reader, opts Options) (*Dataset, error) {
	if opts.Delimiter == "" {
		opts.Delimiter = "\t"
	}
	delim, size := utf8.DecodeRuneInString(opts.Delimiter)
	if size != len(opts.Delimiter) {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", opts.Delimiter)
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	if delim != '#' {
		cr.Comment = '#'
	}
	cr.TrimLeadingSpace = delim != ' ' && delim != '\t'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse rows: %w", err)
	}

	var header []string
	if opts.Header && len(rows) > 0 {
		header, rows = rows[0], rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	width := len(rows[0])
	if width < 2 {
		return nil, fmt.Errorf("need at least one feature and a label column, got %d column(s)", width)
	}
	label := opts.LabelColumn
	if label < 0 {
		label += width
	}
	if label < 0 || label >= width {
		return nil, fmt.Errorf("label column %d out of range for %d columns", opts.LabelColumn, width)
	}

	ds := &Dataset{
		Features: make([][]float64, width-1),
		Labels:   make([]float64, len(rows)),
	}
	for i := range ds.Features {
		ds.Features[i] = make([]float64, len(rows))
	}

	for r, row := range rows {
		for c, field := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", r+1, c, err)
			}
			switch {
			case c == label:
				ds.Labels[r] = v
			case c < label:
				ds.Features[c][r] = v
			default:
				ds.Features[c-1][r] = v
			}
		}
	}

	ds.Names = make([]string, 0, width-1)
	for c := 0; c < width; c++ {
		name := fmt.Sprintf("f%d", c)
		if header != nil {
			name = header[c]
		}
		if c == label {
			ds.LabelName = name
			continue
		}
		ds.Names = append(ds.Names, name)
	}
	if header == nil {
		ds.LabelName = "label"
	}
	return ds, nil
}

// Observations returns the number of rows.
func (d *Dataset) Observations() int { return len(d.Labels) }

// Column returns the feature at index i, or the labels when i equals the
// number of features.
func (d *Dataset) Column(i int) ([]float64, error) {
	switch {
	case i >= 0 && i < len(d.Features):
		return d.Features[i], nil
	case i == len(d.Features):
		return d.Labels, nil
	}
	return nil, fmt.Errorf("column %d out of range [0, %d]", i, len(d.Features))
}

// ColumnName mirrors Column for names.
func (d *Dataset) ColumnName(i int) string {
	if i == len(d.Features) {
		return d.LabelName
	}
	if i >= 0 && i < len(d.Names) {
		return d.Names[i]
	}
	return strconv.Itoa(i)
}

// Write serializes the dataset in the label-last layout.
func (d *Dataset) Write(w io.Writer, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	row := make([]string, len(d.Features)+1)
	for r := range d.Labels {
		for c, f := range d.Features {
			row[c] = strconv.FormatFloat(f[r], 'g', -1, 64)
		}
		row[len(d.Features)] = strconv.FormatFloat(d.Labels[r], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Uniform generates observations with integer features in [0, 10]. The label
// is 1 when the first relevant features sum past half their range, else 2.
func Uniform(rng *rand.Rand, observations, features, relevant int) (*Dataset, error) {
	if observations < 1 || features < 1 {
		return nil, fmt.Errorf("observations and features must be positive, got %d and %d", observations, features)
	}
	if relevant < 0 || relevant > features {
		return nil, fmt.Errorf("relevant features %d outside [0, %d]", relevant, features)
	}

	const xmin, xmax = 0, 10
	delta := float64(relevant) * (xmax - xmin) / 2.0

	ds := &Dataset{
		Names:     make([]string, features),
		Features:  make([][]float64, features),
		Labels:    make([]float64, observations),
		LabelName: "label",
	}
	for k := range ds.Features {
		ds.Names[k] = fmt.Sprintf("f%d", k)
		ds.Features[k] = make([]float64, observations)
		for m := range ds.Features[k] {
			ds.Features[k][m] = float64(rng.Intn(xmax + 1))
		}
	}
	for m := range ds.Labels {
		var sum float64
		for k := 0; k < relevant; k++ {
			sum += ds.Features[k][m]
		}
		if sum > delta {
			ds.Labels[m] = 1
		} else {
			ds.Labels[m] = 2
		}
	}
	return ds, nil
}
