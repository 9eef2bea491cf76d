package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	AppointmentStatusPending   = "Pending"
	AppointmentStatusCancelled = "Cancelled"
	AppointmentStatusCompleted = "Completed"
)

type ConsultationReport struct {
	Name         string  `json:"name,omitempty"`
	Age          int     `json:"age,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Comments     string  `json:"comments,omitempty"`
	Diagnosis    string  `json:"diagnosis,omitempty"`
	Prescription string  `json:"prescription,omitempty"`
}

type Appointment struct {
	Id              uuid.UUID
	PatientId       uuid.UUID
	DoctorId        uuid.UUID
	AppointmentDate time.Time
	AppointmentTime string
	Status          string
	ConsultationFee float64
	Report          *ConsultationReport
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
