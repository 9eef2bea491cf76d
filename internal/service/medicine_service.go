package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IMedicineService interface {
	List(ctx context.Context, page, limit int, category string) (*dto.MedicineListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	Search(ctx context.Context, q *dto.MedicineQuery) (*dto.MedicineListResponse, error)
	Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicineService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewMedicineService(uowFactory unitofwork.RepositoryFactory, listCache *cache.Cache) IMedicineService {
	return &medicineService{
		uowFactory: uowFactory,
		cache:      listCache,
	}
}

func (s *medicineService) List(ctx context.Context, page, limit int, category string) (*dto.MedicineListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("medicines:%d:%d:%s", page, limit, category)
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			return cached.(*dto.MedicineListResponse), nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if category != "" {
		specs = append(specs, specification.ByCategory{Category: category})
	}

	total, err := uow.MedicineRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "name", Desc: false},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	medicines, err := uow.MedicineRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	result := &dto.MedicineListResponse{
		Data:  medicinesToResponses(medicines),
		Count: len(medicines),
		Pagination: &dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	}
	return result, nil
}

func (s *medicineService) Get(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	medicine, err := uow.MedicineRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NotFound("Medicine not found")
	}
	return medicineToResponse(medicine), nil
}

func (s *medicineService) Search(ctx context.Context, q *dto.MedicineQuery) (*dto.MedicineListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if q.Search != "" {
		specs = append(specs, specification.MedicineSearch{Term: q.Search})
	}
	if q.Category != "" {
		specs = append(specs, specification.ByCategory{Category: q.Category})
	}
	if q.MinPrice > 0 {
		specs = append(specs, specification.MinPrice{Price: q.MinPrice})
	}
	if q.MaxPrice > 0 {
		specs = append(specs, specification.MaxPrice{Price: q.MaxPrice})
	}
	specs = append(specs, specification.OrderBy{Field: "name", Desc: false})

	medicines, err := uow.MedicineRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	return &dto.MedicineListResponse{
		Data:  medicinesToResponses(medicines),
		Count: len(medicines),
	}, nil
}

func (s *medicineService) Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	medicine := &entity.Medicine{
		Id:        uuid.New(),
		Name:      req.Name,
		Price:     req.Price,
		ShortDesc: req.ShortDesc,
		Image:     req.Image,
		Category:  req.Category,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.MedicineRepository().Create(ctx, medicine); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return medicineToResponse(medicine), nil
}

func (s *medicineService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	medicine, err := uow.MedicineRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, apperror.NotFound("Medicine not found")
	}

	if req.Name != "" {
		medicine.Name = req.Name
	}
	if req.Price > 0 {
		medicine.Price = req.Price
	}
	if req.ShortDesc != "" {
		medicine.ShortDesc = req.ShortDesc
	}
	if req.Image != "" {
		medicine.Image = req.Image
	}
	if req.Category != "" {
		medicine.Category = req.Category
	}
	medicine.UpdatedAt = time.Now()

	if err := uow.MedicineRepository().Update(ctx, medicine); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return medicineToResponse(medicine), nil
}

func (s *medicineService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	medicine, err := uow.MedicineRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if medicine == nil {
		return apperror.NotFound("Medicine not found")
	}

	if err := uow.MedicineRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache()
	return nil
}

// Catalog writes are rare; dropping the whole cache is simpler than tracking
// which pages a write touched.
func (s *medicineService) invalidateListCache() {
	if s.cache != nil {
		s.cache.Flush()
	}
}

func medicineToResponse(m *entity.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		Id:        m.Id,
		Name:      m.Name,
		Price:     m.Price,
		ShortDesc: m.ShortDesc,
		Image:     m.Image,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
	}
}

func medicinesToResponses(medicines []*entity.Medicine) []*dto.MedicineResponse {
	responses := make([]*dto.MedicineResponse, len(medicines))
	for i, m := range medicines {
		responses[i] = medicineToResponse(m)
	}
	return responses
}
