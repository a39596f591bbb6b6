// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"
	"errors"
)

// GroupElement is a container of child elements of any kind,
// including nested groups. Groups are stored under the data element
// endpoint, wrapped in a data_elements list.
type GroupElement struct {
	ID       string
	EntryID  string
	Title    string
	Children []Element

	// Unparsed holds child records whose type tag had no
	// registered element kind; they are skipped during parsing but
	// kept for inspection.
	Unparsed []json.RawMessage
}

func (e *GroupElement) ElementType() ElementType { return ElementTypeGroup }

// AddChild appends a child element to the group.
func (e *GroupElement) AddChild(child Element) {
	e.Children = append(e.Children, child)
}

func (e *GroupElement) MarshalJSON() ([]byte, error) {
	children := e.Children
	if children == nil {
		children = []Element{}
	}
	return json.Marshal(struct {
		Type     ElementType `json:"type"`
		ID       string      `json:"id,omitempty"`
		Title    string      `json:"title"`
		Children []Element   `json:"children"`
	}{e.ElementType(), e.ID, e.Title, children})
}

func (e *GroupElement) UnmarshalJSON(data []byte) error {
	var rec struct {
		ID       string            `json:"id"`
		EntryID  string            `json:"entry_id"`
		Title    string            `json:"title"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	e.ID = rec.ID
	e.EntryID = rec.EntryID
	e.Title = rec.Title
	e.Children = nil
	e.Unparsed = nil
	for _, raw := range rec.Children {
		child, err := ParseElement(raw)
		if errors.Is(err, ErrUnknownElementType) {
			e.Unparsed = append(e.Unparsed, raw)
			continue
		} else if err != nil {
			return err
		}
		e.Children = append(e.Children, child)
	}
	return nil
}

func parseGroupElement(data json.RawMessage) (Element, error) {
	var e GroupElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create sends the group, with its full child tree, as a new record
// under the given entry and captures the assigned identifier.
func (e *GroupElement) Create(ctx context.Context, c *Client, entryID string) error {
	if entryID == "" {
		return ErrMissingID
	}
	var rec struct {
		ID string `json:"id"`
	}
	err := c.RequestAndDecode(ctx, &rec, "POST", "elements/data", nil, map[string]interface{}{
		"entry_id":      entryID,
		"data_elements": []Element{e},
		"locked":        false,
	})
	if err != nil {
		return err
	}
	e.ID = rec.ID
	e.EntryID = entryID
	return nil
}

// Update overwrites the existing record with the current child tree.
func (e *GroupElement) Update(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	return c.RequestAndDecode(ctx, nil, "PUT", "elements/data/"+e.ID, nil, map[string]interface{}{
		"id":            e.ID,
		"title":         e.Title,
		"data_elements": []Element{e},
		"locked":        false,
	})
}
