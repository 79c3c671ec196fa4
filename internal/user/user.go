// Package user decides who new deals belong to
package user

import (
	"os"
	"os/user"
	"strings"

	"github.com/thenoetrevino/dealboard/internal/models"
)

// DefaultOwner returns the owner given to deals created without one.
// It tries, in order:
// 1. the signed-in user's full name
// 2. the local part of the signed-in user's email
// 3. the OS account name, then the USER environment variable
// 4. "unknown", so the result is never empty
func DefaultOwner(signedIn *models.User) string {
	if signedIn != nil {
		if signedIn.FullName != nil && strings.TrimSpace(*signedIn.FullName) != "" {
			return strings.TrimSpace(*signedIn.FullName)
		}
		if local, _, ok := strings.Cut(signedIn.Email, "@"); ok && local != "" {
			return local
		}
	}
	return systemUsername()
}

func systemUsername() string {
	currentUser, err := user.Current()
	if err == nil && currentUser.Username != "" {
		return currentUser.Username
	}
	if username := os.Getenv("USER"); username != "" {
		return username
	}
	return "unknown"
}
