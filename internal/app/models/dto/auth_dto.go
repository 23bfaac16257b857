package dto

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Name           string   `json:"name" binding:"required,min=2,max=100"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8"`
	Role           string   `json:"role" binding:"required,oneof=student faculty admin"`
	Department     string   `json:"department" binding:"required"`
	RegisterNumber *string  `json:"registerNumber,omitempty"`
	FacultyRoles   []string `json:"facultyRoles,omitempty" binding:"omitempty,dive,oneof=class_advisor mentor hod internship_coordinator"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the public view of a user account
type UserResponse struct {
	ID             int64    `json:"id" example:"1"`
	Name           string   `json:"name" example:"Priya Raman"`
	Email          string   `json:"email" example:"priya@college.edu"`
	Role           string   `json:"role" example:"student"`
	Department     string   `json:"department" example:"CSE"`
	RegisterNumber *string  `json:"registerNumber,omitempty" example:"CS20230042"`
	FacultyRoles   []string `json:"facultyRoles,omitempty"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn" example:"3600"`
	User         UserResponse `json:"user"`
}
