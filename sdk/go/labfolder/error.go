// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Sentinel errors for the expected failure conditions. Operations
// return these (possibly wrapped) instead of printing diagnostics;
// the receiver is always left in its prior state.
var (
	// ErrMissingID means an operation that needs an element or
	// entry identifier was called without one.
	ErrMissingID = errors.New("no identifier provided")

	// ErrNotLoggedIn means the client has no bearer token.
	ErrNotLoggedIn = errors.New("not logged in: no authentication token")

	// ErrNoContent means a create/update was attempted on an
	// element with nothing to send.
	ErrNoContent = errors.New("no content to write")

	// ErrNoTable means a table operation was attempted on a table
	// element with no sheets.
	ErrNoTable = errors.New("no table data")

	// ErrNotTabular means sheet data could not be coerced to the
	// rectangular tabular form and the conversion was aborted.
	ErrNotTabular = errors.New("sheet is not in tabular form")

	// ErrUnknownElementType means a wire record carried a type tag
	// with no registered element kind.
	ErrUnknownElementType = errors.New("unknown element type")

	errNoAPIHost   = errors.New("labfolder.Client cannot perform request: APIHost is not set")
	errNoEnvConfig = errors.New("LABFOLDER_API_HOST and/or LABFOLDER_API_TOKEN environment variables are not set")
)

// TransactionError is returned for API responses with a non-2xx
// status code.
type TransactionError struct {
	Method     string
	URL        url.URL
	StatusCode int
	Status     string
	Message    string
}

func (e *TransactionError) Error() (s string) {
	s = fmt.Sprintf("request failed: %s", e.URL.String())
	if e.Status != "" {
		s = s + ": " + e.Status
	}
	if e.Message != "" {
		s = s + ": " + e.Message
	}
	return
}

func newTransactionError(req *http.Request, resp *http.Response, buf []byte) *TransactionError {
	var e TransactionError
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(buf, &body) == nil {
		// LabFolder reports errors as {"message": ...} or
		// {"error": ...} depending on the endpoint.
		if body.Message != "" {
			e.Message = body.Message
		} else {
			e.Message = body.Error
		}
	}
	e.Method = req.Method
	e.URL = *req.URL
	if resp != nil {
		e.Status = resp.Status
		e.StatusCode = resp.StatusCode
	}
	return &e
}
