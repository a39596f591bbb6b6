// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"
)

// DataElement is a simple structured-data record with a free-form
// description.
type DataElement struct {
	ID          string `json:"id,omitempty"`
	EntryID     string `json:"entry_id,omitempty"`
	Description string `json:"description"`
}

func (e *DataElement) ElementType() ElementType { return ElementTypeData }

func (e *DataElement) MarshalJSON() ([]byte, error) {
	type alias DataElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.ElementType(), (*alias)(e)})
}

func parseDataElement(data json.RawMessage) (Element, error) {
	var e DataElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Load populates the element from its wire record.
func (e *DataElement) Load(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	var rec DataElement
	err := c.RequestAndDecode(ctx, &rec, "GET", "elements/data/"+e.ID, nil, nil)
	if err != nil {
		return err
	}
	*e = rec
	return nil
}

// Create sends the element as a new record under the given entry and
// captures the assigned identifier.
func (e *DataElement) Create(ctx context.Context, c *Client, entryID string) error {
	if entryID == "" {
		return ErrMissingID
	}
	var rec struct {
		ID string `json:"id"`
	}
	err := c.RequestAndDecode(ctx, &rec, "POST", "elements/data", nil, map[string]string{
		"entry_id":    entryID,
		"description": e.Description,
	})
	if err != nil {
		return err
	}
	e.ID = rec.ID
	e.EntryID = entryID
	return nil
}

// Update overwrites the existing record.
func (e *DataElement) Update(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	if e.Description == "" {
		return ErrNoContent
	}
	return c.RequestAndDecode(ctx, nil, "PUT", "elements/data/"+e.ID, nil, map[string]string{
		"id":          e.ID,
		"description": e.Description,
	})
}

// DescriptiveDataElement is a titled description, used mostly as a
// child of a GroupElement. It has no endpoint of its own: it rides
// along inside its parent group's records.
type DescriptiveDataElement struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (e *DescriptiveDataElement) ElementType() ElementType { return ElementTypeDescriptiveData }

func (e *DescriptiveDataElement) MarshalJSON() ([]byte, error) {
	type alias DescriptiveDataElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.ElementType(), (*alias)(e)})
}

func parseDescriptiveDataElement(data json.RawMessage) (Element, error) {
	var e DescriptiveDataElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
