package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity snapshot embedded into resolved chats. The core only
// ever holds read-only copies of it; account management lives elsewhere.
type User struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Email       string     `json:"email"`
	// AvatarImages is ordered, most recent last.
	AvatarImages []string    `json:"avatarImages"`
	Friends      []uuid.UUID `json:"friends"`
	// BackgroundColors is the gradient pair shown when no avatar exists.
	BackgroundColors [2]string `json:"backgroundColors"`
}

// FullName returns the display name used in logs and system messages.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
