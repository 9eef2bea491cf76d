package dto

import (
	"time"

	"healthlink-be/internal/entity"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	DoctorId        uuid.UUID `json:"doctorId" validate:"required"`
	AppointmentDate string    `json:"appointmentDate" validate:"required"`
	AppointmentTime string    `json:"appointmentTime" validate:"required"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

type UpdateReportRequest struct {
	ConsultationReport *entity.ConsultationReport `json:"consultationReport"`
}

type AppointmentResponse struct {
	Id              uuid.UUID                  `json:"id"`
	PatientId       uuid.UUID                  `json:"patientId"`
	DoctorId        uuid.UUID                  `json:"doctorId"`
	AppointmentDate string                     `json:"appointmentDate"`
	AppointmentTime string                     `json:"appointmentTime"`
	Status          string                     `json:"status"`
	ConsultationFee float64                    `json:"consultationFee"`
	Report          *entity.ConsultationReport `json:"consultationReport,omitempty"`
	Doctor          *DoctorResponse            `json:"doctor,omitempty"`
	Patient         *UserResponse              `json:"patient,omitempty"`
	CreatedAt       time.Time                  `json:"createdAt"`
}
