/*
Package tables implements the append-only result table accumulated by
loss-data curve experiments, with snapshot copies and export sinks.
*/
package tables

import (
	"go-ml.dev/pkg/lossdata/fu"
)

/*
Row is one completed experiment: the training seed, the training-set
size used, and the resulting validation loss
*/
type Row struct {
	Seed    int
	Samples int
	ValLoss float64
}

/*
Table is an append-only sequence of experiment rows. Insertion order is
append order and repeated (seed, samples) pairs may coexist.
*/
type Table struct {
	rows []Row
}

/*
NewEmpty makes a table with no rows
*/
func NewEmpty() *Table {
	return &Table{}
}

/*
Append adds rows to the end of the table
*/
func (t *Table) Append(rows ...Row) {
	t.rows = append(t.rows, rows...)
}

/*
Len returns the count of rows
*/
func (t *Table) Len() int {
	return len(t.rows)
}

/*
Row returns the i-th row in append order
*/
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

/*
Copy returns a snapshot of the table; mutating the copy does not affect
the original
*/
func (t *Table) Copy() *Table {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return &Table{rows: rows}
}

/*
MeanLoss returns the validation loss at the given training-set size
averaged over all seeds tested there, NaN if the size was never tested
*/
func (t *Table) MeanLoss(samples int) float64 {
	var a []float64
	for _, r := range t.rows {
		if r.Samples == samples {
			a = append(a, r.ValLoss)
		}
	}
	return fu.Mean(a)
}

/*
Rows returns a copied slice of all rows in append order
*/
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}
