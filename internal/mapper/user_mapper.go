package mapper

import (
	"encoding/json"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToModel(e *entity.User) *model.User {
	return &model.User{
		Id:           e.Id,
		Name:         e.Name,
		Email:        e.Email,
		Role:         e.Role,
		PasswordHash: e.PasswordHash,
		DateOfBirth:  e.DateOfBirth,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func (m *UserMapper) ToEntity(mo *model.User) *entity.User {
	return &entity.User{
		Id:           mo.Id,
		Name:         mo.Name,
		Email:        mo.Email,
		Role:         mo.Role,
		PasswordHash: mo.PasswordHash,
		DateOfBirth:  mo.DateOfBirth,
		CreatedAt:    mo.CreatedAt,
		UpdatedAt:    mo.UpdatedAt,
	}
}

func (m *UserMapper) ProfileToModel(e *entity.DoctorProfile) *model.DoctorProfile {
	availability, _ := json.Marshal(e.Availability)
	return &model.DoctorProfile{
		Id:              e.Id,
		UserId:          e.UserId,
		Specialization:  e.Specialization,
		ConsultationFee: e.ConsultationFee,
		ExperienceYears: e.ExperienceYears,
		Location:        e.Location,
		Availability:    datatypes.JSON(availability),
	}
}

func (m *UserMapper) ProfileToEntity(mo *model.DoctorProfile) *entity.DoctorProfile {
	var availability entity.WeeklyAvailability
	if len(mo.Availability) > 0 {
		// A corrupt availability column degrades to "no slots", not an error.
		_ = json.Unmarshal(mo.Availability, &availability)
	}
	return &entity.DoctorProfile{
		Id:              mo.Id,
		UserId:          mo.UserId,
		Specialization:  mo.Specialization,
		ConsultationFee: mo.ConsultationFee,
		ExperienceYears: mo.ExperienceYears,
		Location:        mo.Location,
		Availability:    availability,
	}
}
