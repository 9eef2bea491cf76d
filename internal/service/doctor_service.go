package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/repository/contract"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IDoctorService interface {
	List(ctx context.Context, q *dto.DoctorListQuery) (*dto.DoctorListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Availability(ctx context.Context, doctorId uuid.UUID, date string) (*dto.DoctorAvailabilityResponse, error)
}

type doctorService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewDoctorService(uowFactory unitofwork.RepositoryFactory, listCache *cache.Cache) IDoctorService {
	return &doctorService{
		uowFactory: uowFactory,
		cache:      listCache,
	}
}

// List serves the doctor catalog. Unfiltered pages are cached briefly since
// the catalog changes far less often than it is browsed.
func (s *doctorService) List(ctx context.Context, q *dto.DoctorListQuery) (*dto.DoctorListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 100
	}

	cacheKey := s.listCacheKey(q)
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			return cached.(*dto.DoctorListResponse), nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doctors, total, err := uow.UserRepository().FindDoctors(ctx, contract.DoctorQuery{
		Specialization: q.Specialization,
		Location:       q.Location,
		MaxFee:         q.MaxFee,
		Search:         q.Search,
		SortBy:         q.SortBy,
		Limit:          q.Limit,
		Offset:         (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = doctorToResponse(doctor)
	}

	result := &dto.DoctorListResponse{
		Doctors:     responses,
		Results:     len(responses),
		TotalPages:  int(math.Ceil(float64(total) / float64(q.Limit))),
		CurrentPage: q.Page,
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	}
	return result, nil
}

func (s *doctorService) listCacheKey(q *dto.DoctorListQuery) string {
	return fmt.Sprintf("doctors:%s:%s:%g:%s:%s:%d:%d",
		q.Specialization, q.Location, q.MaxFee, q.Search, q.SortBy, q.Page, q.Limit)
}

func (s *doctorService) Get(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	profile, err := uow.UserRepository().FindDoctorProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || profile == nil {
		return nil, apperror.NotFound("Doctor not found")
	}

	return &dto.DoctorResponse{
		Id:              user.Id,
		Name:            user.Name,
		Email:           user.Email,
		Specialization:  profile.Specialization,
		ConsultationFee: profile.ConsultationFee,
		ExperienceYears: profile.ExperienceYears,
		Location:        profile.Location,
		Availability:    profile.Availability,
	}, nil
}

// Availability computes the free slots for a given day: the doctor's weekly
// template for that weekday minus slots taken by non-cancelled appointments.
func (s *doctorService) Availability(ctx context.Context, doctorId uuid.UUID, date string) (*dto.DoctorAvailabilityResponse, error) {
	if date == "" {
		return nil, apperror.Validation("Date is required")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, apperror.Validation("date must be YYYY-MM-DD")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.UserRepository().FindDoctorProfile(ctx, doctorId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Doctor not found")
	}

	weekday := strings.ToLower(day.Weekday().String())
	templateSlots := profile.Availability[weekday]

	booked, err := uow.AppointmentRepository().FindAll(ctx,
		specification.ByDoctor{DoctorID: doctorId},
		specification.ByDate{Date: day},
		specification.NotCancelled{},
	)
	if err != nil {
		return nil, err
	}

	bookedTimes := make(map[string]struct{}, len(booked))
	for _, apt := range booked {
		bookedTimes[apt.AppointmentTime] = struct{}{}
	}

	available := make([]string, 0, len(templateSlots))
	for _, slot := range templateSlots {
		if _, taken := bookedTimes[slot]; !taken {
			available = append(available, slot)
		}
	}

	return &dto.DoctorAvailabilityResponse{
		AvailableSlots: available,
		TotalSlots:     len(templateSlots),
		BookedSlots:    len(bookedTimes),
	}, nil
}
