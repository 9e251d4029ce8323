// internal/app/features/authapi/types.go
package authapi

type registerInput struct {
	Name     string `json:"name" label:"Name" validate:"required,max=100"`
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required,min=6"`
	Role     string `json:"role" label:"Role" validate:"omitempty,oneof=user publisher"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotInput struct {
	Email string `json:"email"`
}

type resetInput struct {
	Password string `json:"password" label:"Password" validate:"required,min=6"`
}
