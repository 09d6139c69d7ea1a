package heap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/rowstore/internal/record"
	"github.com/tuannm99/rowstore/internal/storage"
)

const (
	RowsPerPage  = storage.PageSize / record.RowSize
	TableMaxRows = RowsPerPage * storage.TableMaxPages
)

var ErrTableFull = errors.New("heap: table is full")

// Table is an append-only row store on top of a Pager.
// Row i lives in page i/RowsPerPage at byte offset (i%RowsPerPage)*RowSize.
type Table struct {
	pager   *storage.Pager
	numRows uint32
}

// Open builds a Table over p, recovering the row count from the file length.
func Open(p *storage.Pager) (*Table, error) {
	numRows, torn := rowsForLength(p.FileLength())
	if torn > 0 {
		slog.Warn("heap: ignoring trailing bytes that do not form a row",
			"path", p.Path(),
			"file_length", p.FileLength(),
			"bytes", torn,
		)
	}

	slog.Debug("heap: table opened",
		"path", p.Path(),
		"rows", numRows,
		"row_size", record.RowSize,
		"rows_per_page", RowsPerPage,
		"max_rows", TableMaxRows,
	)
	return &Table{pager: p, numRows: numRows}, nil
}

// rowsForLength inverts ByteLength. torn counts trailing bytes past the last whole row.
func rowsForLength(length int64) (rows uint32, torn int64) {
	full := length / storage.PageSize
	rem := length % storage.PageSize

	partial := min(rem/record.RowSize, RowsPerPage)
	torn = rem - partial*record.RowSize

	return uint32(full*RowsPerPage + partial), torn
}

// slot resolves a logical row index to its page number and byte offset.
func slot(i uint32) (pageNum int, offset int) {
	return int(i / RowsPerPage), int(i%RowsPerPage) * record.RowSize
}

// Insert appends row. A full table or an invalid row leaves the table unchanged.
func (t *Table) Insert(row record.Row) error {
	if t.numRows >= TableMaxRows {
		return ErrTableFull
	}
	if err := row.Validate(); err != nil {
		return err
	}

	end := t.End()
	pageNum, off := slot(end.RowNum())
	pg, err := t.pager.GetPage(pageNum)
	if err != nil {
		return fmt.Errorf("heap: insert row %d: %w", end.RowNum(), err)
	}
	if err := record.EncodeInto(pg.Slot(off, record.RowSize), row); err != nil {
		return err
	}
	pg.MarkDirty()
	t.numRows++
	return nil
}

// Scan calls fn for every row in insertion order and returns how many rows it visited.
func (t *Table) Scan(fn func(row record.Row) error) (int, error) {
	visited := 0
	for c := t.Start(); !c.EndOfTable(); c.Advance() {
		row, err := c.Value()
		if err != nil {
			return visited, err
		}
		if err := fn(row); err != nil {
			return visited, err
		}
		visited++
	}
	return visited, nil
}

func (t *Table) RowCount() uint32 { return t.numRows }

// ByteLength is the on-disk size of the current rows: full pages, then the used part of the last one.
func (t *Table) ByteLength() int64 {
	full := int64(t.numRows / RowsPerPage)
	rem := int64(t.numRows % RowsPerPage)
	return full*storage.PageSize + rem*record.RowSize
}

// Close flushes every row to disk and closes the file.
func (t *Table) Close() error {
	return t.pager.Close(t.ByteLength())
}

// Abort closes the file without writing. Used once storage can no longer be trusted.
func (t *Table) Abort() error {
	return t.pager.Release()
}
