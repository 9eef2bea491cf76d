package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'patient'"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	DateOfBirth  *time.Time
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type DoctorProfile struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Specialization  string    `gorm:"type:varchar(100);not null;index"`
	ConsultationFee float64   `gorm:"not null;default:0"`
	ExperienceYears int       `gorm:"not null;default:0"`
	Location        string    `gorm:"type:varchar(255);not null"`
	Availability    datatypes.JSON
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
