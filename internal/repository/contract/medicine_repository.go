package contract

import (
	"context"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	Update(ctx context.Context, medicine *entity.Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Medicine, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Medicine, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
