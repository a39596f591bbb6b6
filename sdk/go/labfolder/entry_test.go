// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"encoding/json"

	"github.com/elntools/labfolder/sdk/go/ctxlog"
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&entrySuite{})

type entrySuite struct{}

func (*entrySuite) TestGet(c *check.C) {
	stub := &stubTransport{
		Responses: map[string]string{
			"/api/v2/entries/42": `{
				"id": "42",
				"title": "Day 3",
				"author_id": "10041",
				"project_id": "7",
				"tags": ["pcr", "prep"],
				"creation_date": "2023-05-17T09:30:00Z",
				"elements": [
					{"id": "1", "type": "TEXT"},
					{"id": "2", "type": "WELL_PLATE"},
					{"id": "3", "type": "DATA"},
					{"id": "4", "type": "CRYSTAL_BALL"}
				]
			}`,
			"/api/v2/elements/text/1":       `{"element_type":"TEXT","id":"1","content":"ran the gel"}`,
			"/api/v2/elements/well-plate/2": `{"element_type":"WELL_PLATE","id":"2","meta":{"wells":96}}`,
			"/api/v2/elements/data/3":       `{"element_type":"DATA","id":"3","description":"band at 1.2kb"}`,
		},
	}
	client := stubClient(stub)
	ctx := ctxlog.Context(context.Background(), ctxlog.TestLogger(c))
	entry := &Entry{ID: "42"}
	c.Assert(entry.Get(ctx, client), check.IsNil)
	c.Check(entry.Title, check.Equals, "Day 3")
	c.Check(entry.AuthorID, check.Equals, "10041")
	c.Check(entry.ProjectID, check.Equals, "7")
	c.Check(entry.Tags, check.DeepEquals, []string{"pcr", "prep"})

	// The well plate record is fetched and kept raw; only the kinds
	// with a registered variant are parsed. The unsupported
	// CRYSTAL_BALL reference is skipped without a fetch.
	c.Assert(entry.Elements, check.HasLen, 2)
	c.Check(entry.Elements[0].(*TextElement).Content, check.Equals, "ran the gel")
	c.Check(entry.Elements[1].(*DataElement).Description, check.Equals, "band at 1.2kb")
	c.Assert(entry.Raw, check.HasLen, 3)
}

func (*entrySuite) TestGetWithoutID(c *check.C) {
	entry := &Entry{}
	c.Check(entry.Get(context.Background(), stubClient(&stubTransport{})), check.Equals, ErrMissingID)
}

func (*entrySuite) TestCreate(c *check.C) {
	stub := &stubTransport{
		Responses: map[string]string{
			"/api/v2/entries": `{"id":"42"}`,
		},
		Status: map[string]int{
			"/api/v2/entries": 201,
		},
	}
	client := stubClient(stub)
	entry := &Entry{Title: "Day 3", AuthorID: "10041", ProjectID: "7"}
	entry.AddTags("pcr", "prep", "pcr")
	entry.AddElement(&TextElement{Content: "notes"})
	c.Assert(entry.Create(context.Background(), client), check.IsNil)
	c.Check(entry.ID, check.Equals, "42")

	var sent map[string]interface{}
	c.Assert(json.Unmarshal(stub.Bodies[len(stub.Bodies)-1], &sent), check.IsNil)
	c.Check(sent["title"], check.Equals, "Day 3")
	c.Check(sent["author_id"], check.Equals, "10041")
	tags := sent["tags"].([]interface{})
	c.Check(tags, check.DeepEquals, []interface{}{"pcr", "prep"})
	elements := sent["elements"].([]interface{})
	c.Assert(elements, check.HasLen, 1)
	c.Check(elements[0].(map[string]interface{})["type"], check.Equals, "TEXT")
}

func (*entrySuite) TestCreateFailureLeavesIDUnset(c *check.C) {
	stub := &stubTransport{
		Responses: map[string]string{
			"/api/v2/entries": `{"message":"project not found"}`,
		},
		Status: map[string]int{
			"/api/v2/entries": 400,
		},
	}
	entry := &Entry{Title: "Day 3"}
	err := entry.Create(context.Background(), stubClient(stub))
	c.Assert(err, check.FitsTypeOf, &TransactionError{})
	c.Check(err.(*TransactionError).StatusCode, check.Equals, 400)
	c.Check(entry.ID, check.Equals, "")
}

func (*entrySuite) TestUpdate(c *check.C) {
	stub := &stubTransport{
		Responses: map[string]string{
			"/api/v2/entries/42": `{"id":"42"}`,
		},
	}
	entry := &Entry{ID: "42", Title: "Day 3 (rev)"}
	c.Assert(entry.Update(context.Background(), stubClient(stub)), check.IsNil)

	var sent map[string]interface{}
	c.Assert(json.Unmarshal(stub.Bodies[len(stub.Bodies)-1], &sent), check.IsNil)
	c.Check(sent["locked"], check.Equals, false)
	c.Check(stub.lastRequest().Method, check.Equals, "PUT")
}

func (*entrySuite) TestUpdateWithoutID(c *check.C) {
	entry := &Entry{Title: "x"}
	c.Check(entry.Update(context.Background(), stubClient(&stubTransport{})), check.Equals, ErrMissingID)
}

func (*entrySuite) TestAddTagsDedupes(c *check.C) {
	entry := &Entry{}
	entry.AddTags("a", "b")
	entry.AddTags("b", "c")
	c.Check(entry.Tags, check.DeepEquals, []string{"a", "b", "c"})
}
