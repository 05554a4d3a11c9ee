package domain

import "time"

// Role is a platform-wide role. Community administration is tracked per
// community on Membership, not here.
type Role string

const (
	RoleUser       Role = "USER"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// User models a registered producer or consumer.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// SessionUser is the caller identity carried by a Session.
type SessionUser struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Session is the authenticated caller for the duration of one request.
type Session struct {
	User      SessionUser
	TokenID   string
	ExpiresAt time.Time
}

// IsSuperAdmin reports whether the session holds the top-level administrative role.
func (s *Session) IsSuperAdmin() bool {
	return s != nil && s.User.Role == RoleSuperAdmin
}
