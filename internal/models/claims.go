package models

// Role represents the roles the external identity service issues for this
// service's routes.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleViewer     Role = "viewer"
)

// Claims represents the verified JWT claims attached to a request.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// CanMutate reports whether the role may create, update or delete tasks
// and assignments. Viewers are read-only.
func (c *Claims) CanMutate() bool {
	return c.Role == RoleAdmin || c.Role == RoleDispatcher
}
