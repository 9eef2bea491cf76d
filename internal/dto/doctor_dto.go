package dto

import (
	"github.com/google/uuid"
)

type DoctorListQuery struct {
	Specialization string
	Location       string
	MaxFee         float64
	Search         string
	SortBy         string
	Page           int
	Limit          int
}

type DoctorResponse struct {
	Id              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Specialization  string              `json:"specialization"`
	ConsultationFee float64             `json:"consultationFee"`
	ExperienceYears int                 `json:"experienceYears"`
	Location        string              `json:"location"`
	Availability    map[string][]string `json:"availability,omitempty"`
}

type DoctorListResponse struct {
	Doctors     []*DoctorResponse `json:"doctors"`
	Results     int               `json:"results"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

type DoctorAvailabilityResponse struct {
	AvailableSlots []string `json:"availableSlots"`
	TotalSlots     int      `json:"totalSlots"`
	BookedSlots    int      `json:"bookedSlots"`
}
