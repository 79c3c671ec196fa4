package auth

import (
	"time"

	"github.com/thenoetrevino/dealboard/internal/models"
)

// apiUser is the provider's user shape. Metadata is free-form on the
// provider side, so only the keys we read are declared.
type apiUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	UserMetadata struct {
		FullName  *string `json:"full_name"`
		Company   *string `json:"company"`
		AvatarURL *string `json:"avatar_url"`
	} `json:"user_metadata"`
}

// toModel copies the provider user into the explicit record
func (u apiUser) toModel() models.User {
	return models.User{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     nonEmpty(u.UserMetadata.FullName),
		Company:      nonEmpty(u.UserMetadata.Company),
		AvatarURL:    nonEmpty(u.UserMetadata.AvatarURL),
		CreatedAt:    u.CreatedAt,
		LastSignInAt: u.LastSignInAt,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// Profile is the optional metadata collected at sign-up
type Profile struct {
	FullName string `json:"full_name,omitempty"`
	Company  string `json:"company,omitempty"`
}

// Session is a signed-in user plus the provider's tokens
type Session struct {
	User         models.User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type apiSession struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"refresh_token"`
	User         *apiUser `json:"user"`
}

func (s apiSession) toSession(now time.Time) *Session {
	session := &Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
	if s.User != nil {
		session.User = s.User.toModel()
	}
	switch {
	case s.ExpiresAt > 0:
		session.ExpiresAt = time.Unix(s.ExpiresAt, 0)
	case s.ExpiresIn > 0:
		session.ExpiresAt = now.Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return session
}
