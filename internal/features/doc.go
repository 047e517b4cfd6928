// Package features builds trailing price statistics from a daily price series
// and partitions the result into train and test sets.
//
// The pipeline is LoadPriceSeries, SortByDate, ComputeFeatures,
// DropIncomplete and Split. For every window w the row at position i carries
// the mean and sample standard deviation of Close over positions i-w to i.
// The current row is inside its own window unless Options.ExcludeCurrent is
// set. Rows at positions below w hold zero.
package features
