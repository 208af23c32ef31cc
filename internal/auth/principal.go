package auth

import "strings"

// Unknown is used for any identity field the caller's token did not carry.
const Unknown = "unknown"

// Principal is the acting caller of an operation.
type Principal struct {
	UserID   string
	UserName string
	Role     string
}

// Anonymous is the principal used when no identity is available at all.
var Anonymous = Principal{UserID: Unknown, UserName: Unknown}

// Normalize fills blank identity fields with Unknown.
func (p Principal) Normalize() Principal {
	if strings.TrimSpace(p.UserID) == "" {
		p.UserID = Unknown
	}
	if strings.TrimSpace(p.UserName) == "" {
		p.UserName = Unknown
	}
	return p
}
