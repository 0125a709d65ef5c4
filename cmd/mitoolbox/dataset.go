// cmd/mitoolbox/dataset.go
package mitoolbox

import (
	"log/slog"

	"github.com/mwiater/mitoolbox/dataset"
)

// loadDataset reads path using the delimiter and label settings in cfg.
func loadDataset(path string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path, dataset.Options{
		Delimiter:   cfg.Delimiter,
		Header:      cfg.Header,
		LabelColumn: cfg.LabelColumn,
	})
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded dataset", "path", path, "observations", ds.Observations(), "features", len(ds.Features))
	return ds, nil
}

// resolveColumn maps a column flag onto a dataset column index. Negative
// values select the label column.
func resolveColumn(ds *dataset.Dataset, column int) int {
	if column < 0 {
		return len(ds.Features)
	}
	return column
}

// column returns the samples and name of a column flag value.
func column(ds *dataset.Dataset, index int) ([]float64, string, error) {
	i := resolveColumn(ds, index)
	x, err := ds.Column(i)
	if err != nil {
		return nil, "", err
	}
	return x, ds.ColumnName(i), nil
}
