package heap

import (
	"fmt"

	"github.com/tuannm99/rowstore/internal/record"
)

// Cursor walks logical row indices of a Table.
type Cursor struct {
	table  *Table
	rowNum uint32
}

// Start returns a cursor at the first row.
func (t *Table) Start() *Cursor {
	return &Cursor{table: t}
}

// End returns a cursor one past the last row, where the next insert lands.
func (t *Table) End() *Cursor {
	return &Cursor{table: t, rowNum: t.numRows}
}

func (c *Cursor) EndOfTable() bool { return c.rowNum >= c.table.numRows }

func (c *Cursor) RowNum() uint32 { return c.rowNum }

func (c *Cursor) Advance() {
	if !c.EndOfTable() {
		c.rowNum++
	}
}

// Value decodes the row under the cursor.
func (c *Cursor) Value() (record.Row, error) {
	if c.EndOfTable() {
		return record.Row{}, fmt.Errorf("heap: cursor at row %d is past the end (%d rows)", c.rowNum, c.table.numRows)
	}

	pageNum, off := slot(c.rowNum)
	pg, err := c.table.pager.GetPage(pageNum)
	if err != nil {
		return record.Row{}, fmt.Errorf("heap: read row %d: %w", c.rowNum, err)
	}
	return record.Decode(pg.Slot(off, record.RowSize))
}
