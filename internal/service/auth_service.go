package service

import (
	"context"
	"fmt"
	"time"

	"healthlink-be/internal/config"
	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"
	"healthlink-be/pkg/events"
	pktNats "healthlink-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	jwtConfig      config.JwtConfig
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, jwtConfig config.JwtConfig) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		jwtConfig:      jwtConfig,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Validation("email already registered")
	}

	if req.Role == entity.UserRoleDoctor && !entity.IsValidSpecialization(req.Specialization) {
		return nil, apperror.Validation("invalid specialization")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperror.Validation("dateOfBirth must be YYYY-MM-DD")
		}
		dob = &parsed
	}

	user := &entity.User{
		Id:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(hash),
		DateOfBirth:  dob,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if req.Role == entity.UserRoleDoctor {
		profile := &entity.DoctorProfile{
			Id:              uuid.New(),
			UserId:          user.Id,
			Specialization:  req.Specialization,
			ConsultationFee: req.ConsultationFee,
			ExperienceYears: req.ExperienceYears,
			Location:        req.Location,
			Availability:    req.Availability,
		}
		if err := uow.UserRepository().CreateDoctorProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.NewEvent(events.TypeUserRegistered, map[string]interface{}{
			"user_id":   user.Id.String(),
			"full_name": user.Name,
			"role":      user.Role,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}

	return s.tokenResponse(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByEmail{Email: req.Email},
		specification.ByRole{Role: req.Role},
	)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Authentication("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Authentication("invalid email or password")
	}

	return s.tokenResponse(user)
}

func (s *authService) tokenResponse(user *entity.User) (*dto.AuthResponse, error) {
	expiry := time.Duration(s.jwtConfig.ExpiryHours) * time.Hour

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: signedToken,
		User:  userToResponse(user),
	}, nil
}

func userToResponse(user *entity.User) *dto.UserResponse {
	res := &dto.UserResponse{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.Format("2006-01-02")
		res.DateOfBirth = &dob
	}
	return res
}
