package account

import "errors"

var (
	ErrNotSignedIn      = errors.New("not signed in")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrIdentityDisabled = errors.New("identity service is not configured; set identity.url and identity.anon_key")
)
