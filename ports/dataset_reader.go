package ports

import "sixsigma/domain/dataset"

// DatasetReader loads a tabular dataset from wherever it lives (Excel,
// CSV, a database). The engine only ever sees the parsed table.
type DatasetReader interface {
	Read() (*dataset.Table, error)
}
