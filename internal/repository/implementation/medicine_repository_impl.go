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

type MedicineRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MedicineMapper
}

func NewMedicineRepository(db *gorm.DB) contract.MedicineRepository {
	return &MedicineRepositoryImpl{
		db:     db,
		mapper: mapper.NewMedicineMapper(),
	}
}

func (r *MedicineRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MedicineRepositoryImpl) Create(ctx context.Context, medicine *entity.Medicine) error {
	m := r.mapper.ToModel(medicine)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*medicine = *r.mapper.ToEntity(m)
	return nil
}

func (r *MedicineRepositoryImpl) Update(ctx context.Context, medicine *entity.Medicine) error {
	m := r.mapper.ToModel(medicine)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*medicine = *r.mapper.ToEntity(m)
	return nil
}

func (r *MedicineRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Medicine{}, id).Error
}

func (r *MedicineRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Medicine, error) {
	var m model.Medicine
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MedicineRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Medicine, error) {
	var models []*model.Medicine
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MedicineRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Medicine{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
