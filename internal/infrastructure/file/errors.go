package file

import "errors"

// ErrNotCSV is returned by LocalSource.Open for paths without a .csv extension.
var ErrNotCSV = errors.New("import source must be a .csv file")
