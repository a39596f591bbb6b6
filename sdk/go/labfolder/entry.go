// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"

	"github.com/elntools/labfolder/sdk/go/ctxlog"
)

// Entry is a notebook page: metadata plus an ordered sequence of
// elements.
type Entry struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	AuthorID     string   `json:"author_id"`
	ProjectID    string   `json:"project_id"`
	Tags         []string `json:"tags"`
	CreationDate string   `json:"creation_date,omitempty"`

	// Elements holds the parsed element variants, in page order.
	Elements []Element `json:"elements"`

	// Raw holds the detail records as fetched, one per listed
	// element, including kinds that have no parsed variant (well
	// plates, for instance). Fetch order, so it can be longer than
	// Elements when records were skipped.
	Raw []json.RawMessage `json:"-"`
}

// entryRecord is the wire shape of an entry, with elements as
// id+type references to be resolved separately.
type entryRecord struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	AuthorID     string   `json:"author_id"`
	ProjectID    string   `json:"project_id"`
	Tags         []string `json:"tags"`
	CreationDate string   `json:"creation_date,omitempty"`
	Elements     []struct {
		ID   string      `json:"id"`
		Type ElementType `json:"type"`
	} `json:"elements"`
}

// AddTags appends tags, dropping duplicates.
func (e *Entry) AddTags(tags ...string) {
	seen := make(map[string]bool, len(e.Tags))
	for _, t := range e.Tags {
		seen[t] = true
	}
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			e.Tags = append(e.Tags, t)
		}
	}
}

// AddElement appends an element to the page.
func (e *Entry) AddElement(el Element) {
	e.Elements = append(e.Elements, el)
}

// Get fetches the entry's metadata, then resolves each listed element
// through its kind-specific endpoint and the type-tag dispatch.
// Records of a kind with no endpoint, and records whose parse fails,
// are logged and skipped; their siblings still load.
func (e *Entry) Get(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	logger := ctxlog.FromContext(ctx)
	var rec entryRecord
	err := c.RequestAndDecode(ctx, &rec, "GET", "entries/"+e.ID, nil, nil)
	if err != nil {
		return err
	}
	e.Title = rec.Title
	e.AuthorID = rec.AuthorID
	e.ProjectID = rec.ProjectID
	e.Tags = rec.Tags
	e.CreationDate = rec.CreationDate
	e.Elements = nil
	e.Raw = nil
	for _, ref := range rec.Elements {
		endpoint, ok := elementEndpoints[ref.Type]
		if !ok {
			logger.WithField("elementType", ref.Type).Warn("element type not supported, skipping")
			continue
		}
		var detail json.RawMessage
		err := c.RequestAndDecode(ctx, &detail, "GET", "elements/"+endpoint+"/"+ref.ID, nil, nil)
		if err != nil {
			return err
		}
		e.Raw = append(e.Raw, detail)
		el, err := ParseElement(detail)
		if err != nil {
			logger.WithField("elementID", ref.ID).WithError(err).Warn("skipping element")
			continue
		}
		e.Elements = append(e.Elements, el)
	}
	return nil
}

// Create sends the entry, with its full metadata and element
// snapshot, and captures the assigned identifier on success.
func (e *Entry) Create(ctx context.Context, c *Client) error {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	var rec struct {
		ID string `json:"id"`
	}
	err := c.RequestAndDecode(ctx, &rec, "POST", "entries", nil, map[string]interface{}{
		"title":      e.Title,
		"author_id":  e.AuthorID,
		"project_id": e.ProjectID,
		"tags":       tags,
		"elements":   e.elementsSnapshot(),
	})
	if err != nil {
		return err
	}
	e.ID = rec.ID
	return nil
}

// Update overwrites the existing entry with the current metadata and
// element snapshot.
func (e *Entry) Update(ctx context.Context, c *Client) error {
	if e.ID == "" {
		return ErrMissingID
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return c.RequestAndDecode(ctx, nil, "PUT", "entries/"+e.ID, nil, map[string]interface{}{
		"title":      e.Title,
		"author_id":  e.AuthorID,
		"project_id": e.ProjectID,
		"tags":       tags,
		"elements":   e.elementsSnapshot(),
		"locked":     false,
	})
}

func (e *Entry) elementsSnapshot() []Element {
	if e.Elements == nil {
		return []Element{}
	}
	return e.Elements
}
