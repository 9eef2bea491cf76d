package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Appointment struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId       uuid.UUID `gorm:"type:uuid;not null;index"`
	DoctorId        uuid.UUID `gorm:"type:uuid;not null;index:idx_doctor_slot"`
	AppointmentDate time.Time `gorm:"type:date;not null;index:idx_doctor_slot"`
	AppointmentTime string    `gorm:"type:varchar(10);not null;index:idx_doctor_slot"`
	Status          string    `gorm:"type:varchar(20);not null;default:'Pending'"`
	ConsultationFee float64   `gorm:"not null"`
	Report          datatypes.JSON
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
