package tables

import (
	"database/sql"
	"encoding/csv"
	"io"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
)

/*
WriteCSV writes the table as CSV with a seed,samples,val_loss header
*/
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seed", "samples", "val_loss"}); err != nil {
		return zorros.Trace(err)
	}
	for _, r := range t.rows {
		err := cw.Write([]string{
			strconv.Itoa(r.Seed),
			strconv.Itoa(r.Samples),
			strconv.FormatFloat(r.ValLoss, 'g', -1, 64),
		})
		if err != nil {
			return zorros.Trace(err)
		}
	}
	cw.Flush()
	return zorros.Trace(cw.Error())
}

/*
Save writes the table as CSV to the given output, xz-compressed if
compress is set
*/
func (t *Table) Save(output iokit.Output, compress bool) error {
	wh, err := output.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	var w io.Writer = wh
	var xw *xz.Writer
	if compress {
		if xw, err = xz.NewWriter(wh); err != nil {
			return zorros.Trace(err)
		}
		w = xw
	}
	if err = t.WriteCSV(w); err != nil {
		return err
	}
	if xw != nil {
		if err = xw.Close(); err != nil {
			return zorros.Trace(err)
		}
	}
	return zorros.Trace(wh.Commit())
}

/*
WriteSQL replaces the named table in a SQLite database with the rows of
this table, for downstream reporting tools
*/
func (t *Table) WriteSQL(path, name string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return zorros.Trace(err)
	}
	defer db.Close()
	if _, err = db.Exec("drop table if exists " + name); err != nil {
		return zorros.Trace(err)
	}
	_, err = db.Exec("create table " + name + " (seed integer, samples integer, val_loss real)")
	if err != nil {
		return zorros.Trace(err)
	}
	tx, err := db.Begin()
	if err != nil {
		return zorros.Trace(err)
	}
	stmt, err := tx.Prepare("insert into " + name + " (seed, samples, val_loss) values (?,?,?)")
	if err != nil {
		tx.Rollback()
		return zorros.Trace(err)
	}
	for _, r := range t.rows {
		if _, err = stmt.Exec(r.Seed, r.Samples, r.ValLoss); err != nil {
			tx.Rollback()
			return zorros.Trace(err)
		}
	}
	return zorros.Trace(tx.Commit())
}
