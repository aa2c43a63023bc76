// Copyright 2025 otaflow authors.
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

// User is the minimal publisher identity. Login, roles and session
// handling live in an external identity system; the server only needs
// a row to resolve an access token to a numeric publisher id.
type User struct {
	Model
	Username  string `json:"username" gorm:"uniqueIndex;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	TokenHash string `json:"-" gorm:"uniqueIndex;not null"`
}

func (User) TableName() string {
	return "users"
}
