package model

import "errors"

// ErrInvalidToken covers every session token failure: bad signature,
// malformed input, missing claims and expiry.
var ErrInvalidToken = errors.New("invalid token")

// API error codes (used in HTTP responses)
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeContentTooLong     = "CONTENT_TOO_LONG"
	CodeContentEmpty       = "CONTENT_EMPTY"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAlreadyFollowing   = "ALREADY_FOLLOWING"
	CodeNotFollowing       = "NOT_FOLLOWING"
	CodeCannotFollowSelf   = "CANNOT_FOLLOW_SELF"
	CodeNoContents         = "NO_CONTENTS"
)
