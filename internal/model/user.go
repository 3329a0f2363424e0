package model

// Role names accepted for a user.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered user. Users are seeded at process start and
// mutated in place by updates; they are only removed by the inactive cleanup.
type User struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Age   int    `json:"age" yaml:"age"`
	Role  string `json:"role" yaml:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
