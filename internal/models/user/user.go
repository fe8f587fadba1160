package user

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Role string

const RoleAdmin Role = "admin"
const RoleUser Role = "user"
