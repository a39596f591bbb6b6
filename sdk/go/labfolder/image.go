// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"
)

// ImageElement is an image attached to an entry. Load fetches the
// metadata record only; FetchData retrieves the image bytes.
type ImageElement struct {
	ID                      string `json:"id,omitempty"`
	EntryID                 string `json:"entry_id,omitempty"`
	Title                   string `json:"title"`
	OwnerID                 string `json:"owner_id,omitempty"`
	CreationDate            string `json:"creation_date,omitempty"`
	OriginalFileContentType string `json:"original_file_content_type,omitempty"`

	// Data holds the original image bytes after FetchData.
	Data []byte `json:"-"`
}

func (e *ImageElement) ElementType() ElementType { return ElementTypeImage }

func (e *ImageElement) MarshalJSON() ([]byte, error) {
	type alias ImageElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.ElementType(), (*alias)(e)})
}

func parseImageElement(data json.RawMessage) (Element, error) {
	var e ImageElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.OriginalFileContentType == "" {
		e.OriginalFileContentType = "image/png"
	}
	return &e, nil
}

// Load populates the element's metadata from its wire record.
func (e *ImageElement) Load(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	var rec ImageElement
	err := c.RequestAndDecode(ctx, &rec, "GET", "elements/image/"+e.ID, nil, nil)
	if err != nil {
		return err
	}
	rec.Data = e.Data
	*e = rec
	return nil
}

// FetchData retrieves the original image bytes and stores them in
// Data.
func (e *ImageElement) FetchData(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	buf, err := c.fetchRaw(ctx, "elements/image/"+e.ID+"/original-data")
	if err != nil {
		return err
	}
	e.Data = buf
	return nil
}
