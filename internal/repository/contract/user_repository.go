package contract

import (
	"context"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/repository/specification"

	"github.com/google/uuid"
)

// DoctorQuery captures the catalog filters the doctor listing supports.
type DoctorQuery struct {
	Specialization string
	Location       string
	MaxFee         float64
	Search         string
	SortBy         string
	Limit          int
	Offset         int
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateDoctorProfile(ctx context.Context, profile *entity.DoctorProfile) error
	UpdateDoctorProfile(ctx context.Context, profile *entity.DoctorProfile) error
	FindDoctorProfile(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindDoctors(ctx context.Context, q DoctorQuery) ([]*entity.Doctor, int64, error)
}
