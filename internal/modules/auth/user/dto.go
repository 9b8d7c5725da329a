package user

// RegisterDTO is the request body for registration.
type RegisterDTO struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginDTO is the request body for authentication.
type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileDTO is the request body for self-service profile updates.
type UpdateProfileDTO struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"  binding:"omitempty,email"`
	Bio    *string `json:"bio"    binding:"omitempty,max=500"`
	Avatar *string `json:"avatar"`
}

// ChangePasswordDTO is the request body for password changes.
type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required,min=6"`
}

// Identity is the public-safe shape returned on register/login. The secret
// and its hash never appear here.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}
