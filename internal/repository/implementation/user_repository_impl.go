package implementation

import (
	"context"
	"errors"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/mapper"
	"healthlink-be/internal/model"
	"healthlink-be/internal/repository/contract"
	"healthlink-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) CreateDoctorProfile(ctx context.Context, profile *entity.DoctorProfile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) UpdateDoctorProfile(ctx context.Context, profile *entity.DoctorProfile) error {
	m := r.mapper.ProfileToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ProfileToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindDoctorProfile(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var m model.DoctorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToEntity(&m), nil
}

// FindDoctors joins users with doctor_profiles and applies the catalog filters.
// Returns the page plus the unpaginated total for the pagination envelope.
func (r *UserRepositoryImpl) FindDoctors(ctx context.Context, q contract.DoctorQuery) ([]*entity.Doctor, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = users.id").
		Where("users.role = ?", entity.UserRoleDoctor)

	var specs []specification.Specification
	if q.Specialization != "" {
		specs = append(specs, specification.BySpecialization{Specialization: q.Specialization})
	}
	if q.Location != "" {
		specs = append(specs, specification.ByLocationLike{Location: q.Location})
	}
	if q.MaxFee > 0 {
		specs = append(specs, specification.ByMaxFee{MaxFee: q.MaxFee})
	}
	if q.Search != "" {
		specs = append(specs, specification.DoctorSearch{Term: q.Search})
	}
	base = r.applySpecifications(base, specs...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	type row struct {
		model.User
		Profile model.DoctorProfile `gorm:"embedded;embeddedPrefix:profile_"`
	}

	query := specification.SortDoctors{By: q.SortBy}.Apply(base).
		Select("users.*, " +
			"doctor_profiles.id AS profile_id, doctor_profiles.user_id AS profile_user_id, " +
			"doctor_profiles.specialization AS profile_specialization, " +
			"doctor_profiles.consultation_fee AS profile_consultation_fee, " +
			"doctor_profiles.experience_years AS profile_experience_years, " +
			"doctor_profiles.location AS profile_location, " +
			"doctor_profiles.availability AS profile_availability")
	if q.Limit > 0 {
		query = query.Limit(q.Limit).Offset(q.Offset)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	doctors := make([]*entity.Doctor, len(rows))
	for i, rw := range rows {
		doctors[i] = &entity.Doctor{
			User:    *r.mapper.ToEntity(&rw.User),
			Profile: *r.mapper.ProfileToEntity(&rw.Profile),
		}
	}
	return doctors, total, nil
}
