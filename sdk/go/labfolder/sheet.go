// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// TableContent is the wire document of a table element: a named set
// of sheets.
type TableContent struct {
	Sheets map[string]Sheet `json:"sheets"`
}

// Sheet is one named grid of cells, with the row and column counts
// the API declares alongside the grid.
type Sheet struct {
	Name        string    `json:"name"`
	RowCount    int       `json:"rowCount"`
	ColumnCount int       `json:"columnCount"`
	Data        SheetData `json:"data"`
}

// SheetData wraps the cell grid the way the API nests it. The grid is
// keyed row-ordinal -> column-ordinal, both as decimal strings.
type SheetData struct {
	DataTable map[string]map[string]Cell `json:"dataTable"`
}

// Cell is one cell of a sheet's grid. A cell whose wire value has no
// "value" key and a cell with "value": null are indistinguishable:
// both decode to a nil Value.
type Cell struct {
	Value interface{}

	// malformed records that the wire value was not a JSON object.
	// The conversion engine turns the whole containing row into
	// nulls rather than failing the sheet.
	malformed bool
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value interface{} `json:"value"`
	}{c.Value})
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var rec struct {
		Value interface{} `json:"value"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		*c = Cell{malformed: true}
		return nil
	}
	c.Value = rec.Value
	c.malformed = false
	return nil
}

// Table is the in-memory tabular form of one sheet: rectangular rows
// under ordered column labels, with nil marking empty cells. Labels
// are positional integers unless a header row supplied names.
type Table struct {
	Columns []interface{}
	Records [][]interface{}
}

// NewTable returns a Table with the given column labels and no rows.
func NewTable(columns ...interface{}) *Table {
	return &Table{Columns: columns}
}

// AppendRecord adds one row of values, which must match the column
// count.
func (t *Table) AppendRecord(values ...interface{}) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("%w: record has %d values, table has %d columns", ErrNotTabular, len(values), len(t.Columns))
	}
	t.Records = append(t.Records, values)
	return nil
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.Records) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Table converts the sheet's cell grid to tabular form. If header is
// true, the first surviving row supplies the column labels and is
// removed from the data.
func (s Sheet) Table(header bool) *Table {
	return tableFromGrid(s.Data.DataTable, header)
}

// sortWireKeys orders grid keys numerically where they parse as
// integers (the wire uses decimal ordinals), lexically otherwise,
// numeric before non-numeric.
func sortWireKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

func tableFromGrid(grid map[string]map[string]Cell, header bool) *Table {
	rowKeys := make([]string, 0, len(grid))
	for k := range grid {
		rowKeys = append(rowKeys, k)
	}
	sortWireKeys(rowKeys)

	// Columns of the sheet are the union of column keys across all
	// of its rows.
	colSet := make(map[string]bool)
	for _, rk := range rowKeys {
		for ck := range grid[rk] {
			colSet[ck] = true
		}
	}
	colKeys := make([]string, 0, len(colSet))
	for k := range colSet {
		colKeys = append(colKeys, k)
	}
	sortWireKeys(colKeys)

	// Rectangularize: every row gets a slot for every sheet-wide
	// column, nil where the cell is absent or null. A row holding a
	// malformed cell degrades to all nils, which the row pruning
	// below then removes.
	records := make([][]interface{}, 0, len(rowKeys))
	for _, rk := range rowKeys {
		rec := make([]interface{}, len(colKeys))
		if !rowMalformed(grid[rk]) {
			for j, ck := range colKeys {
				if cell, ok := grid[rk][ck]; ok {
					rec[j] = cell.Value
				}
			}
		}
		records = append(records, rec)
	}

	// Drop rows that are entirely empty.
	kept := records[:0]
	for _, rec := range records {
		empty := true
		for _, v := range rec {
			if v != nil {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, rec)
		}
	}
	records = kept

	// Drop columns that are entirely empty across the surviving
	// rows. This runs on the rectangularized data, so a column
	// present on the wire but null everywhere is removed too.
	colUsed := make([]bool, len(colKeys))
	ncols := 0
	for j := range colKeys {
		for _, rec := range records {
			if rec[j] != nil {
				colUsed[j] = true
				ncols++
				break
			}
		}
	}
	if ncols < len(colKeys) {
		for i, rec := range records {
			slim := make([]interface{}, 0, ncols)
			for j, v := range rec {
				if colUsed[j] {
					slim = append(slim, v)
				}
			}
			records[i] = slim
		}
	}

	t := &Table{}
	if header {
		if len(records) > 0 {
			t.Columns = records[0]
			t.Records = records[1:]
		}
	} else {
		t.Columns = make([]interface{}, ncols)
		for j := range t.Columns {
			t.Columns[j] = j
		}
		t.Records = records
	}
	return t
}

func rowMalformed(row map[string]Cell) bool {
	for _, cell := range row {
		if cell.malformed {
			return true
		}
	}
	return false
}

// ExportContent converts tabular sheets back to a wire document. With
// header true, each sheet's column labels are inserted as its first
// data row (labels become data, losing any non-string type they had);
// structurally the columns are re-keyed to contiguous ordinals either
// way.
//
// NaN and infinite values are replaced with null. If any sheet is
// missing or not rectangular, the whole conversion aborts with
// ErrNotTabular and no partial document is returned.
func ExportContent(sheets map[string]*Table, header bool) (*TableContent, error) {
	content := &TableContent{Sheets: make(map[string]Sheet, len(sheets))}
	for name, t := range sheets {
		if t == nil {
			return nil, fmt.Errorf("%w: sheet %q", ErrNotTabular, name)
		}
		records := t.Records
		if header {
			records = append([][]interface{}{t.Columns}, records...)
		}
		ncols := t.NumCols()
		grid := make(map[string]map[string]Cell, len(records))
		for i, rec := range records {
			if len(rec) != ncols {
				return nil, fmt.Errorf("%w: sheet %q row %d has %d values, want %d", ErrNotTabular, name, i, len(rec), ncols)
			}
			row := make(map[string]Cell, len(rec))
			for j, v := range rec {
				row[strconv.Itoa(j)] = Cell{Value: sanitizeValue(v)}
			}
			grid[strconv.Itoa(i)] = row
		}
		content.Sheets[name] = Sheet{
			Name:        name,
			RowCount:    len(records),
			ColumnCount: ncols,
			Data:        SheetData{DataTable: grid},
		}
	}
	return content, nil
}

func sanitizeValue(v interface{}) interface{} {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
	case float32:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	}
	return v
}
