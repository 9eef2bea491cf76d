package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByPatient struct {
	PatientID uuid.UUID
}

func (s ByPatient) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}

type ByDoctor struct {
	DoctorID uuid.UUID
}

func (s ByDoctor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doctor_id = ?", s.DoctorID)
}

// BySlot pins an appointment to a doctor's slot on a given day.
type BySlot struct {
	DoctorID uuid.UUID
	Date     time.Time
	Time     string
}

func (s BySlot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?",
		s.DoctorID, s.Date, s.Time)
}

type ByDate struct {
	Date time.Time
}

func (s ByDate) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("appointment_date = ?", s.Date)
}

// NotCancelled keeps only appointments that still occupy their slot.
type NotCancelled struct{}

func (s NotCancelled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "Cancelled")
}

type ExceptID struct {
	ID uuid.UUID
}

func (s ExceptID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id <> ?", s.ID)
}
