// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"
)

// TableElement is a tabular sheet set within an entry. Sheets holds
// the in-memory tabular form; the wire grids as fetched stay
// available through WireSheets.
type TableElement struct {
	ID           string
	EntryID      string
	Title        string
	OwnerID      string
	CreationDate string

	// Header controls whether the first row of each sheet is a
	// header row (column names) rather than data. NewTableElement
	// and the wire parser set it to true, matching how LabFolder's
	// own spreadsheet editor lays sheets out.
	Header bool

	// Sheets maps sheet name to tabular form.
	Sheets map[string]*Table

	wire map[string]Sheet
}

// NewTableElement returns an empty table element with Header set.
func NewTableElement() *TableElement {
	return &TableElement{Header: true}
}

func (e *TableElement) ElementType() ElementType { return ElementTypeTable }

// WireSheets returns the sheets as last fetched from the API, before
// conversion to tabular form.
func (e *TableElement) WireSheets() map[string]Sheet { return e.wire }

type tableRecord struct {
	ID           string        `json:"id,omitempty"`
	EntryID      string        `json:"entry_id,omitempty"`
	Title        string        `json:"title"`
	OwnerID      string        `json:"owner_id,omitempty"`
	CreationDate string        `json:"creation_date,omitempty"`
	Content      *TableContent `json:"content,omitempty"`
}

func (e *TableElement) MarshalJSON() ([]byte, error) {
	rec := struct {
		Type ElementType `json:"type"`
		tableRecord
	}{Type: e.ElementType()}
	rec.ID = e.ID
	rec.EntryID = e.EntryID
	rec.Title = e.Title
	if len(e.Sheets) > 0 {
		content, err := ExportContent(e.Sheets, e.Header)
		if err != nil {
			return nil, err
		}
		rec.Content = content
	}
	return json.Marshal(rec)
}

func (e *TableElement) fromRecord(rec tableRecord) {
	e.ID = rec.ID
	e.EntryID = rec.EntryID
	e.Title = rec.Title
	e.OwnerID = rec.OwnerID
	e.CreationDate = rec.CreationDate
	e.Header = true
	e.wire = nil
	e.Sheets = nil
	if rec.Content == nil {
		return
	}
	e.wire = rec.Content.Sheets
	e.Sheets = make(map[string]*Table, len(e.wire))
	for name, sheet := range e.wire {
		e.Sheets[name] = sheet.Table(e.Header)
	}
}

func parseTableElement(data json.RawMessage) (Element, error) {
	var rec tableRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	var e TableElement
	e.fromRecord(rec)
	return &e, nil
}

// Load populates the element from its wire record and converts every
// sheet to tabular form.
func (e *TableElement) Load(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	var rec tableRecord
	err := c.RequestAndDecode(ctx, &rec, "GET", "elements/table/"+e.ID, nil, nil)
	if err != nil {
		return err
	}
	e.fromRecord(rec)
	return nil
}

// AddSheet attaches a tabular sheet under the given name, creating
// the sheet map if this is the first one.
func (e *TableElement) AddSheet(name string, t *Table) {
	if e.Sheets == nil {
		e.Sheets = make(map[string]*Table)
	}
	e.Sheets[name] = t
}

func (e *TableElement) exportContent() (*TableContent, error) {
	if len(e.Sheets) == 0 {
		return nil, ErrNoTable
	}
	return ExportContent(e.Sheets, e.Header)
}

// Create sends the element as a new record under the given entry (or
// the element's own EntryID if none is given) and captures the
// assigned identifier. A sheet set that cannot be exported aborts the
// operation before any request is made.
func (e *TableElement) Create(ctx context.Context, c *Client, entryID string) error {
	if entryID == "" {
		entryID = e.EntryID
	}
	if entryID == "" {
		return ErrMissingID
	}
	content, err := e.exportContent()
	if err != nil {
		return err
	}
	var rec struct {
		ID string `json:"id"`
	}
	err = c.RequestAndDecode(ctx, &rec, "POST", "elements/table", nil, map[string]interface{}{
		"entry_id": entryID,
		"title":    e.Title,
		"content":  content,
		"locked":   false,
	})
	if err != nil {
		return err
	}
	e.ID = rec.ID
	e.EntryID = entryID
	return nil
}

// Update overwrites the existing record with the current sheet set.
func (e *TableElement) Update(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	content, err := e.exportContent()
	if err != nil {
		return err
	}
	return c.RequestAndDecode(ctx, nil, "PUT", "elements/table/"+e.ID, nil, map[string]interface{}{
		"entry_id": e.EntryID,
		"id":       e.ID,
		"content":  content,
		"locked":   false,
	})
}
