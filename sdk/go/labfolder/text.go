// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"
)

// TextElement is a plain rich-text block within an entry.
type TextElement struct {
	ID      string `json:"id,omitempty"`
	EntryID string `json:"entry_id,omitempty"`
	Content string `json:"content"`
}

func (e *TextElement) ElementType() ElementType { return ElementTypeText }

func (e *TextElement) MarshalJSON() ([]byte, error) {
	type alias TextElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.ElementType(), (*alias)(e)})
}

func parseTextElement(data json.RawMessage) (Element, error) {
	var e TextElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Load populates the element from its wire record.
func (e *TextElement) Load(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	var rec TextElement
	err := c.RequestAndDecode(ctx, &rec, "GET", "elements/text/"+e.ID, nil, nil)
	if err != nil {
		return err
	}
	*e = rec
	return nil
}

// Create sends the element as a new record under the given entry and
// captures the assigned identifier.
func (e *TextElement) Create(ctx context.Context, c *Client, entryID string) error {
	if entryID == "" {
		return ErrMissingID
	}
	var rec struct {
		ID string `json:"id"`
	}
	err := c.RequestAndDecode(ctx, &rec, "POST", "elements/text", nil, map[string]string{
		"entry_id": entryID,
		"content":  e.Content,
	})
	if err != nil {
		return err
	}
	e.ID = rec.ID
	e.EntryID = entryID
	return nil
}

// Update overwrites the existing record.
func (e *TextElement) Update(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	if e.Content == "" {
		return ErrNoContent
	}
	return c.RequestAndDecode(ctx, nil, "PUT", "elements/text/"+e.ID, nil, map[string]string{
		"id":      e.ID,
		"content": e.Content,
	})
}
