package model

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
	RoleSupplier UserRole = "supplier"
)

func (r UserRole) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin || r == RoleSupplier
}

// AuthUser is the signed-in identity. There is no credential behind it.
type AuthUser struct {
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type LoginInput struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type SignupInput struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	Role            UserRole `json:"role"`
}
