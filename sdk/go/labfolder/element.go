// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"encoding/json"
	"fmt"
)

// ElementType is the wire tag identifying an element kind.
type ElementType string

const (
	ElementTypeText            ElementType = "TEXT"
	ElementTypeData            ElementType = "DATA"
	ElementTypeDescriptiveData ElementType = "DESCRIPTIVE_DATA"
	ElementTypeFile            ElementType = "FILE"
	ElementTypeImage           ElementType = "IMAGE"
	ElementTypeGroup           ElementType = "DATA_ELEMENT_GROUP"
	ElementTypeTable           ElementType = "TABLE"

	// ElementTypeWellPlate is fetched along with entries but has
	// no parsed variant; the record stays in Entry.Raw.
	ElementTypeWellPlate ElementType = "WELL_PLATE"
)

// An Element is one content unit within an entry. The set of
// implementations is closed: TextElement, DataElement,
// DescriptiveDataElement, FileElement, ImageElement, GroupElement,
// and TableElement.
type Element interface {
	ElementType() ElementType
}

// elementParsers maps each known type tag to its wire-record parser.
var elementParsers = map[ElementType]func(json.RawMessage) (Element, error){
	ElementTypeText:            parseTextElement,
	ElementTypeData:            parseDataElement,
	ElementTypeDescriptiveData: parseDescriptiveDataElement,
	ElementTypeFile:            parseFileElement,
	ElementTypeImage:           parseImageElement,
	ElementTypeGroup:           parseGroupElement,
	ElementTypeTable:           parseTableElement,
}

// elementEndpoints maps a type tag to the path segment of its CRUD
// endpoint under elements/. Groups share the data endpoint.
var elementEndpoints = map[ElementType]string{
	ElementTypeText:      "text",
	ElementTypeData:      "data",
	ElementTypeFile:      "file",
	ElementTypeImage:     "image",
	ElementTypeGroup:     "data",
	ElementTypeTable:     "table",
	ElementTypeWellPlate: "well-plate",
}

// ParseElement builds the Element variant matching a wire record's
// declared type tag. Records with an unregistered tag yield
// ErrUnknownElementType; callers processing a batch skip the record
// and continue with its siblings.
func ParseElement(data json.RawMessage) (Element, error) {
	var probe struct {
		ElementType ElementType `json:"element_type"`
		Type        ElementType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	tag := probe.ElementType
	if tag == "" {
		tag = probe.Type
	}
	parse, ok := elementParsers[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElementType, tag)
	}
	return parse(data)
}
