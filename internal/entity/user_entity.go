package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserRolePatient = "patient"
	UserRoleDoctor  = "doctor"
)

// Specializations accepted for doctor profiles.
var Specializations = []string{
	"Cardiologist",
	"Neurologist",
	"Dermatologist",
	"Pediatrician",
	"Orthopedic",
	"Gynecologist",
	"Psychiatrist",
	"General Physician",
	"ENT Specialist",
	"Ophthalmologist",
}

func IsValidSpecialization(s string) bool {
	for _, v := range Specializations {
		if v == s {
			return true
		}
	}
	return false
}

type User struct {
	Id           uuid.UUID
	Name         string
	Email        string
	Role         string
	PasswordHash string
	DateOfBirth  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WeeklyAvailability maps lowercase weekday names to time slots ("09:00").
type WeeklyAvailability map[string][]string

type DoctorProfile struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Specialization  string
	ConsultationFee float64
	ExperienceYears int
	Location        string
	Availability    WeeklyAvailability
}

// Doctor is a user joined with its profile, the shape the catalog endpoints serve.
type Doctor struct {
	User
	Profile DoctorProfile
}
