// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"encoding/json"
	"math"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&sheetSuite{})

type sheetSuite struct{}

func gridFromJSON(c *check.C, j string) map[string]map[string]Cell {
	var grid map[string]map[string]Cell
	c.Assert(json.Unmarshal([]byte(j), &grid), check.IsNil)
	return grid
}

func (*sheetSuite) TestHeaderExtraction(c *check.C) {
	grid := gridFromJSON(c, `{
		"0": {"A": {"value": "x"}, "B": {"value": "y"}},
		"1": {"A": {"value": 1}, "B": {"value": 2}}
	}`)
	t := tableFromGrid(grid, true)
	c.Check(t.Columns, check.DeepEquals, []interface{}{"x", "y"})
	c.Assert(t.Records, check.HasLen, 1)
	c.Check(t.Records[0], check.DeepEquals, []interface{}{float64(1), float64(2)})
}

func (*sheetSuite) TestPositionalColumns(c *check.C) {
	grid := gridFromJSON(c, `{
		"0": {"0": {"value": "a"}, "1": {"value": "b"}}
	}`)
	t := tableFromGrid(grid, false)
	c.Check(t.Columns, check.DeepEquals, []interface{}{0, 1})
	c.Assert(t.Records, check.HasLen, 1)
	c.Check(t.Records[0], check.DeepEquals, []interface{}{"a", "b"})
}

func (*sheetSuite) TestAbsentAndNullCellsIndistinguishable(c *check.C) {
	// {} and {"value": null} decode to the same empty cell.
	gridA := gridFromJSON(c, `{
		"0": {"0": {}, "1": {"value": 1}},
		"1": {"0": {"value": 5}, "1": {"value": 2}}
	}`)
	gridB := gridFromJSON(c, `{
		"0": {"0": {"value": null}, "1": {"value": 1}},
		"1": {"0": {"value": 5}, "1": {"value": 2}}
	}`)
	c.Check(tableFromGrid(gridA, false), check.DeepEquals, tableFromGrid(gridB, false))
}

func (*sheetSuite) TestRaggedRowsRectangularized(c *check.C) {
	// Row 1 has no cell under column 1; the tabular form still
	// covers the sheet-wide column set.
	grid := gridFromJSON(c, `{
		"0": {"0": {"value": "a"}, "1": {"value": "b"}},
		"1": {"0": {"value": "c"}}
	}`)
	t := tableFromGrid(grid, false)
	c.Check(t.NumCols(), check.Equals, 2)
	c.Assert(t.Records, check.HasLen, 2)
	c.Check(t.Records[1], check.DeepEquals, []interface{}{"c", nil})
}

func (*sheetSuite) TestAllNullColumnPruned(c *check.C) {
	grid := gridFromJSON(c, `{
		"0": {"0": {"value": 1}, "1": {"value": null}, "2": {"value": 2}},
		"1": {"0": {"value": 3}, "1": {"value": null}, "2": {"value": 4}},
		"2": {"0": {"value": 5}, "1": {"value": null}, "2": {"value": 6}}
	}`)
	t := tableFromGrid(grid, false)
	c.Check(t.NumCols(), check.Equals, 2)
	c.Check(t.NumRows(), check.Equals, 3)

	content, err := ExportContent(map[string]*Table{"s": t}, false)
	c.Assert(err, check.IsNil)
	c.Check(content.Sheets["s"].ColumnCount, check.Equals, 2)
}

func (*sheetSuite) TestAllNullRowPruned(c *check.C) {
	grid := gridFromJSON(c, `{
		"0": {"0": {"value": "x"}},
		"1": {"0": {"value": null}},
		"2": {"0": {"value": "y"}}
	}`)
	t := tableFromGrid(grid, false)
	c.Check(t.NumRows(), check.Equals, 2)
	c.Check(t.Records[0], check.DeepEquals, []interface{}{"x"})
	c.Check(t.Records[1], check.DeepEquals, []interface{}{"y"})
}

func (*sheetSuite) TestMalformedRowFallback(c *check.C) {
	// Row 0's cell is not an object. The row degrades to nulls and
	// is pruned; its siblings still convert.
	grid := gridFromJSON(c, `{
		"0": {"A": 5},
		"1": {"A": {"value": "ok"}}
	}`)
	t := tableFromGrid(grid, false)
	c.Check(t.NumRows(), check.Equals, 1)
	c.Check(t.Records[0], check.DeepEquals, []interface{}{"ok"})
}

func (*sheetSuite) TestWireKeyOrderingIsNumeric(c *check.C) {
	grid := gridFromJSON(c, `{
		"0": {"0": {"value": "first"}},
		"2": {"0": {"value": "second"}},
		"10": {"0": {"value": "third"}}
	}`)
	t := tableFromGrid(grid, false)
	c.Assert(t.Records, check.HasLen, 3)
	c.Check(t.Records[0][0], check.Equals, "first")
	c.Check(t.Records[1][0], check.Equals, "second")
	c.Check(t.Records[2][0], check.Equals, "third")
}

func (*sheetSuite) TestEmptyGrid(c *check.C) {
	t := tableFromGrid(map[string]map[string]Cell{}, true)
	c.Check(t.NumRows(), check.Equals, 0)
	c.Check(t.NumCols(), check.Equals, 0)
}

func (*sheetSuite) TestRoundTripWithHeader(c *check.C) {
	orig := NewTable("x", "y")
	c.Assert(orig.AppendRecord(float64(1), "a"), check.IsNil)
	c.Assert(orig.AppendRecord(float64(2), nil), check.IsNil)
	c.Assert(orig.AppendRecord(nil, "b"), check.IsNil)

	content, err := ExportContent(map[string]*Table{"s": orig}, true)
	c.Assert(err, check.IsNil)
	c.Check(content.Sheets["s"].RowCount, check.Equals, 4)
	c.Check(content.Sheets["s"].ColumnCount, check.Equals, 2)

	back := content.Sheets["s"].Table(true)
	c.Check(back, check.DeepEquals, orig)
}

func (*sheetSuite) TestExportHeaderRowHoldsColumnNames(c *check.C) {
	t := NewTable("x", "y")
	c.Assert(t.AppendRecord(float64(1), float64(2)), check.IsNil)
	content, err := ExportContent(map[string]*Table{"s": t}, true)
	c.Assert(err, check.IsNil)
	grid := content.Sheets["s"].Data.DataTable
	c.Check(grid["0"]["0"].Value, check.Equals, "x")
	c.Check(grid["0"]["1"].Value, check.Equals, "y")
	c.Check(grid["1"]["0"].Value, check.Equals, float64(1))
}

func (*sheetSuite) TestInfinityAndNaNSanitized(c *check.C) {
	t := NewTable(0, 1, 2)
	c.Assert(t.AppendRecord(math.Inf(1), math.Inf(-1), math.NaN()), check.IsNil)
	content, err := ExportContent(map[string]*Table{"s": t}, false)
	c.Assert(err, check.IsNil)
	grid := content.Sheets["s"].Data.DataTable
	for col := range grid["0"] {
		c.Check(grid["0"][col].Value, check.IsNil)
	}
	j, err := json.Marshal(grid["0"]["0"])
	c.Assert(err, check.IsNil)
	c.Check(string(j), check.Equals, `{"value":null}`)
}

func (*sheetSuite) TestExportNilSheetAborts(c *check.C) {
	_, err := ExportContent(map[string]*Table{"s": nil}, false)
	c.Check(err, check.ErrorMatches, `sheet is not in tabular form.*`)
}

func (*sheetSuite) TestExportRaggedSheetAborts(c *check.C) {
	t := NewTable("a", "b")
	t.Records = append(t.Records, []interface{}{1})
	_, err := ExportContent(map[string]*Table{"s": t}, false)
	c.Check(err, check.ErrorMatches, `sheet is not in tabular form.*`)
}

func (*sheetSuite) TestWireDocumentShape(c *check.C) {
	t := NewTable("x")
	c.Assert(t.AppendRecord("v"), check.IsNil)
	content, err := ExportContent(map[string]*Table{"Sheet1": t}, true)
	c.Assert(err, check.IsNil)

	j, err := json.Marshal(content)
	c.Assert(err, check.IsNil)
	var generic map[string]interface{}
	c.Assert(json.Unmarshal(j, &generic), check.IsNil)
	sheet := generic["sheets"].(map[string]interface{})["Sheet1"].(map[string]interface{})
	c.Check(sheet["name"], check.Equals, "Sheet1")
	c.Check(sheet["rowCount"], check.Equals, float64(2))
	c.Check(sheet["columnCount"], check.Equals, float64(1))
	data := sheet["data"].(map[string]interface{})["dataTable"].(map[string]interface{})
	row0 := data["0"].(map[string]interface{})["0"].(map[string]interface{})
	c.Check(row0["value"], check.Equals, "x")
}
