package mapper

import (
	"healthlink-be/internal/entity"
	"healthlink-be/internal/model"
)

type MedicineMapper struct{}

func NewMedicineMapper() *MedicineMapper {
	return &MedicineMapper{}
}

func (m *MedicineMapper) ToModel(e *entity.Medicine) *model.Medicine {
	return &model.Medicine{
		Id:        e.Id,
		Name:      e.Name,
		Price:     e.Price,
		ShortDesc: e.ShortDesc,
		Image:     e.Image,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *MedicineMapper) ToEntity(mo *model.Medicine) *entity.Medicine {
	return &entity.Medicine{
		Id:        mo.Id,
		Name:      mo.Name,
		Price:     mo.Price,
		ShortDesc: mo.ShortDesc,
		Image:     mo.Image,
		Category:  mo.Category,
		CreatedAt: mo.CreatedAt,
		UpdatedAt: mo.UpdatedAt,
	}
}

func (m *MedicineMapper) ToEntities(models []*model.Medicine) []*entity.Medicine {
	entities := make([]*entity.Medicine, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
