// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
)

// FileElement is a reference to an uploaded file attached to an
// entry.
type FileElement struct {
	ID          string `json:"id,omitempty"`
	EntryID     string `json:"entry_id,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
}

func (e *FileElement) ElementType() ElementType { return ElementTypeFile }

func (e *FileElement) MarshalJSON() ([]byte, error) {
	type alias FileElement
	return json.Marshal(struct {
		Type ElementType `json:"type"`
		*alias
	}{e.ElementType(), (*alias)(e)})
}

func parseFileElement(data json.RawMessage) (Element, error) {
	var e FileElement
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Load populates the element's metadata from its wire record.
func (e *FileElement) Load(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	var rec FileElement
	err := c.RequestAndDecode(ctx, &rec, "GET", "elements/file/"+e.ID, nil, nil)
	if err != nil {
		return err
	}
	*e = rec
	return nil
}

// Download returns the stored file content.
func (e *FileElement) Download(ctx context.Context, c *Client) ([]byte, error) {
	if e.ID == "" {
		return nil, ErrMissingID
	}
	return c.fetchRaw(ctx, "elements/file/"+e.ID+"/original-data")
}

// Upload sends file content as a new file element under the given
// entry and captures the assigned identifier.
func (e *FileElement) Upload(ctx context.Context, c *Client, entryID, fileName string, r io.Reader) error {
	if entryID == "" {
		return ErrMissingID
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("entry_id", entryID); err != nil {
		return err
	}
	if err := mw.WriteField("file_name", fileName); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL("elements/file"), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var rec struct {
		ID string `json:"id"`
	}
	if err := c.DoAndDecode(&rec, req); err != nil {
		return err
	}
	e.ID = rec.ID
	e.EntryID = entryID
	e.FileName = fileName
	return nil
}
