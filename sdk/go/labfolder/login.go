// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
)

// Login obtains a bearer token for the given credentials, stores it
// in the client, and resolves the caller's identity.
//
// Incorrect credentials, malformed input, and blocked accounts come
// back as a *TransactionError with status 401, 400, and 403
// respectively; the client's token is left unchanged in every failure
// case.
func (c *Client) Login(ctx context.Context, user, password string) (UserInfo, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.RequestAndDecode(ctx, &resp, "POST", "auth/login", nil, map[string]string{
		"user":     user,
		"password": password,
	})
	if err != nil {
		return UserInfo{}, err
	}
	c.AuthToken = resp.Token
	return c.CurrentUser(ctx)
}

// Logout invalidates the client's bearer token on the server and
// clears it locally. The API acknowledges with 204.
func (c *Client) Logout(ctx context.Context) error {
	if c.AuthToken == "" {
		return ErrNotLoggedIn
	}
	err := c.RequestAndDecode(ctx, nil, "POST", "auth/logout", nil, nil)
	if err != nil {
		return err
	}
	c.AuthToken = ""
	return nil
}
