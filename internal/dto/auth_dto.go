package dto

import (
	"github.com/google/uuid"
)

type SignupRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=patient doctor"`
	DateOfBirth string `json:"dateOfBirth"`

	// Doctor-only fields, ignored for patients.
	Specialization  string              `json:"specialization"`
	ConsultationFee float64             `json:"consultationFee"`
	ExperienceYears int                 `json:"experienceYears"`
	Location        string              `json:"location"`
	Availability    map[string][]string `json:"availability"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=patient doctor"`
}

// AuthResponse carries the signed token alongside the user it belongs to.
// The token is also set as an httpOnly cookie by the controller.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type UserResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DateOfBirth *string   `json:"dateOfBirth,omitempty"`
}
