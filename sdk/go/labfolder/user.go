// Copyright (C) The LabFolder Go Client Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package labfolder

import (
	"context"
	"net/url"
	"regexp"
)

// UserInfo is the identity record resolved once at login.
type UserInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	// Initials are the capital letters of the first and last name,
	// in order ("Marie Curie" -> "MC").
	Initials string `json:"-"`

	// Zone is the user's time zone, from the account settings.
	Zone string `json:"-"`
}

var notCapital = regexp.MustCompile(`[^A-Z]`)

// CurrentUser calls the "me" API and returns the identity record
// corresponding to this client's credentials.
func (c *Client) CurrentUser(ctx context.Context) (UserInfo, error) {
	if c.AuthToken == "" {
		return UserInfo{}, ErrNotLoggedIn
	}
	var me struct {
		User         UserInfo `json:"user"`
		UserSettings struct {
			ZoneID string `json:"zone_id"`
		} `json:"user_settings"`
	}
	err := c.RequestAndDecode(ctx, &me, "GET", "me", url.Values{"expand": {"user"}}, nil)
	if err != nil {
		return UserInfo{}, err
	}
	u := me.User
	u.Initials = notCapital.ReplaceAllString(u.FirstName, "") + notCapital.ReplaceAllString(u.LastName, "")
	u.Zone = me.UserSettings.ZoneID
	return u, nil
}
