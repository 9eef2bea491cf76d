package specification

import (
	"gorm.io/gorm"
)

// Doctor catalog filters operate on the users-joined-doctor_profiles query.

type BySpecialization struct {
	Specialization string
}

func (s BySpecialization) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doctor_profiles.specialization = ?", s.Specialization)
}

type ByLocationLike struct {
	Location string
}

func (s ByLocationLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doctor_profiles.location ILIKE ?", "%"+s.Location+"%")
}

type ByMaxFee struct {
	MaxFee float64
}

func (s ByMaxFee) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doctor_profiles.consultation_fee <= ?", s.MaxFee)
}

// DoctorSearch matches name, specialization or location, case-insensitively.
type DoctorSearch struct {
	Term string
}

func (s DoctorSearch) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Term + "%"
	return db.Where(
		"users.name ILIKE ? OR doctor_profiles.specialization ILIKE ? OR doctor_profiles.location ILIKE ?",
		like, like, like,
	)
}

type SortDoctors struct {
	By string // "fee" or "experience"
}

func (s SortDoctors) Apply(db *gorm.DB) *gorm.DB {
	switch s.By {
	case "fee":
		return db.Order("doctor_profiles.consultation_fee ASC")
	default:
		return db.Order("doctor_profiles.experience_years DESC")
	}
}
