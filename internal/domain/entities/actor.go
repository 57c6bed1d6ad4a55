package entities

// Role is the workflow role of an authenticated user.
type Role string

const (
	RoleBuyer      Role = "buyer"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

var Roles = []Role{RoleBuyer, RoleSupervisor, RoleManager, RoleAdmin}

func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Actor is the identity supplied by the auth gateway for the current request.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
