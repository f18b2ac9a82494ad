package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents a user's privilege level. Roles form a total order:
// ADMIN > MANAGER > USER > GUEST.
type Role string

// Possible user role values.
const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
	RoleGuest   Role = "GUEST"
)

// Privilege returns the role's rank in the privilege order. Higher means
// more privileged. Unknown roles rank below GUEST.
func (r Role) Privilege() int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleManager:
		return 3
	case RoleUser:
		return 2
	case RoleGuest:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether the role is one of the enumerated values.
func (r Role) IsValid() bool {
	return r.Privilege() > 0
}

// AtLeast reports whether the role carries at least the privilege of other.
// Capability checks are rank comparisons, never string matching.
func (r Role) AtLeast(other Role) bool {
	return r.Privilege() >= other.Privilege()
}

// Theme represents a UI color preference.
type Theme string

// Possible theme values.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences holds per-user settings. All fields have defaults; see
// DefaultPreferences.
type Preferences struct {
	Theme         Theme  `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
	Timezone      string `json:"timezone"`
}

// DefaultPreferences returns the preference bundle applied to users that
// never set their own.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         ThemeLight,
		Notifications: true,
		Language:      "en",
		Timezone:      "UTC",
	}
}

// MaxNameLength bounds the user display name.
const MaxNameLength = 100

// User represents a registered user of the application.
type User struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// NewUser creates a new active User with default preferences. An empty role
// defaults to USER. Returns a *ValidationError if any field fails validation.
func NewUser(name, email string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}

	now := time.Now().UTC()
	user := &User{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Email:       email,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
		Preferences: DefaultPreferences(),
	}

	if result := ValidateUser(user); !result.Valid {
		return nil, result.Err()
	}

	return user, nil
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageUsers reports whether the user may create, update, or delete
// other users. Requires MANAGER privilege or above.
func (u *User) CanManageUsers() bool {
	return u.Role.AtLeast(RoleManager)
}

// CanChangeRoles reports whether the user may change another user's role.
// Requires ADMIN privilege.
func (u *User) CanChangeRoles() bool {
	return u.Role.AtLeast(RoleAdmin)
}

// Touch bumps the last-update timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}

// RecordLogin stamps the last-login timestamp with the current time.
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	clone := *u
	if u.LastLoginAt != nil {
		lastLogin := *u.LastLoginAt
		clone.LastLoginAt = &lastLogin
	}
	return &clone
}
