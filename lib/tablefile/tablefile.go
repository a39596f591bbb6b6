// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package tablefile moves tabular sheet sets between the labfolder
// SDK's in-memory form and xlsx workbooks, so table elements can be
// exported for offline editing and written back.
package tablefile

import (
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/elntools/labfolder/sdk/go/labfolder"
)

// WriteFile writes the given sheets to an xlsx workbook at path. Each
// sheet's column labels become its first row; empty cells are left
// blank.
func WriteFile(path string, sheets map[string]*labfolder.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		t := sheets[name]
		if err := writeRow(f, name, 1, t.Columns); err != nil {
			return err
		}
		for i, rec := range t.Records {
			if err := writeRow(f, name, i+2, rec); err != nil {
				return err
			}
		}
	}
	// Drop the workbook's default sheet unless the caller used the
	// same name.
	if _, ok := sheets["Sheet1"]; !ok && len(sheets) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for j, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(j+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile reads an xlsx workbook back into tabular sheets. With
// header true the first row of each sheet supplies the column labels;
// otherwise labels are positional and every row is data. Numeric cell
// text is re-typed (int64, then float64, then string), and blank
// cells come back as nil.
func ReadFile(path string, header bool) (map[string]*labfolder.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := make(map[string]*labfolder.Table)
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}
		sheets[name] = tableFromRows(rows, header)
	}
	return sheets, nil
}

func tableFromRows(rows [][]string, header bool) *labfolder.Table {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	records := make([][]interface{}, len(rows))
	for i, row := range rows {
		rec := make([]interface{}, width)
		for j, cell := range row {
			if cell != "" {
				rec[j] = parseValue(cell)
			}
		}
		records[i] = rec
	}
	t := &labfolder.Table{}
	if header {
		if len(records) > 0 {
			t.Columns = records[0]
			t.Records = records[1:]
		}
		return t
	}
	t.Columns = make([]interface{}, width)
	for j := range t.Columns {
		t.Columns[j] = j
	}
	t.Records = records
	return t
}

// parseValue re-types a cell's text the way the sheet editor would:
// integer, then float, then plain string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
