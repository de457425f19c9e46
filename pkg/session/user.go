package session

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is the signed-in back-office user as persisted under the "user" key.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	LastLogin string `json:"lastLogin,omitempty"`
}

// UserPatch carries the fields UpdateUser merges; nil fields are kept.
type UserPatch struct {
	Email *string
	Name  *string
	Role  *string
}

func (u User) apply(p UserPatch) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return u
}

// Can reports whether u holds role. Admins hold every role.
func (u User) Can(role string) bool {
	return u.Role == RoleAdmin || u.Role == role
}

// ParseRole maps the role names used by the API ("Admin", "Editor") to
// RoleAdmin or RoleEditor. Anything but Admin is an editor.
func ParseRole(apiRole string) string {
	if apiRole == "Admin" {
		return RoleAdmin
	}
	return RoleEditor
}

// APIRole is the inverse of ParseRole.
func APIRole(role string) string {
	if role == RoleAdmin {
		return "Admin"
	}
	return "Editor"
}
