// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the authenticated member attached to a request context.
//
// It is resolved from storage after token verification and never carries
// the password hash.
type Identity struct {
	MemberID string
	Email    string
	Name     string
	IsAdmin  bool
	TokenID  string
}

// Owns reports whether the identity is the member identified by id.
func (identity *Identity) Owns(id string) bool {
	return identity != nil && identity.MemberID == id
}
