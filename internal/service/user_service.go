package service

import (
	"context"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetById(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetMe(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateMe(ctx context.Context, userId uuid.UUID, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory  unitofwork.RepositoryFactory
	chatService IChatService
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, chatService IChatService) IUserService {
	return &userService{
		uowFactory:  uowFactory,
		chatService: chatService,
	}
}

func (s *userService) GetById(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return userToResponse(user), nil
}

func (s *userService) GetMe(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	return s.GetById(ctx, userId)
}

// GetProfile is the populated variant of GetMe: the account plus everything
// hanging off it. Patients get appointments, chats and orders; doctors get
// their public profile and appointments.
func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	profile := &dto.ProfileResponse{User: userToResponse(user)}

	var appointmentSpec specification.Specification
	if user.Role == entity.UserRoleDoctor {
		appointmentSpec = specification.ByDoctor{DoctorID: user.Id}

		doctorProfile, err := uow.UserRepository().FindDoctorProfile(ctx, user.Id)
		if err != nil {
			return nil, err
		}
		if doctorProfile != nil {
			profile.Doctor = doctorToResponse(&entity.Doctor{User: *user, Profile: *doctorProfile})
		}
	} else {
		appointmentSpec = specification.ByPatient{PatientID: user.Id}
	}

	appointments, err := uow.AppointmentRepository().FindAll(ctx,
		appointmentSpec,
		specification.OrderBy{Field: "appointment_date", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	for _, apt := range appointments {
		profile.Appointments = append(profile.Appointments, appointmentToResponse(apt))
	}

	if user.Role == entity.UserRolePatient {
		chats, err := s.chatService.ListSummaries(ctx, user.Id)
		if err != nil {
			return nil, err
		}
		profile.Chats = chats

		orders, err := uow.OrderRepository().FindAll(ctx,
			specification.FilterBy{Field: "customer_id", Value: user.Id},
		)
		if err != nil {
			return nil, err
		}
		for _, order := range orders {
			profile.Orders = append(profile.Orders, orderToResponse(order, nil))
		}
	}

	return profile, nil
}

func (s *userService) UpdateMe(ctx context.Context, userId uuid.UUID, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, apperror.Validation("dateOfBirth must be YYYY-MM-DD")
		}
		user.DateOfBirth = &parsed
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == entity.UserRoleDoctor {
		doctorProfile, err := uow.UserRepository().FindDoctorProfile(ctx, user.Id)
		if err != nil {
			return nil, err
		}
		if doctorProfile != nil {
			changed := false
			if req.Location != "" {
				doctorProfile.Location = req.Location
				changed = true
			}
			if req.ConsultationFee > 0 {
				doctorProfile.ConsultationFee = req.ConsultationFee
				changed = true
			}
			if req.Availability != nil {
				doctorProfile.Availability = req.Availability
				changed = true
			}
			if changed {
				if err := uow.UserRepository().UpdateDoctorProfile(ctx, doctorProfile); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

func doctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		Id:              doctor.User.Id,
		Name:            doctor.User.Name,
		Email:           doctor.User.Email,
		Specialization:  doctor.Profile.Specialization,
		ConsultationFee: doctor.Profile.ConsultationFee,
		ExperienceYears: doctor.Profile.ExperienceYears,
		Location:        doctor.Profile.Location,
		Availability:    doctor.Profile.Availability,
	}
}

func appointmentToResponse(apt *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		Id:              apt.Id,
		PatientId:       apt.PatientId,
		DoctorId:        apt.DoctorId,
		AppointmentDate: apt.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: apt.AppointmentTime,
		Status:          apt.Status,
		ConsultationFee: apt.ConsultationFee,
		Report:          apt.Report,
		CreatedAt:       apt.CreatedAt,
	}
}

func orderToResponse(order *entity.Order, medicineNames map[uuid.UUID]string) *dto.OrderResponse {
	items := make([]*dto.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = &dto.OrderItemResponse{
			MedicineId: item.MedicineId,
			Name:       medicineNames[item.MedicineId],
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}
	return &dto.OrderResponse{
		Id:              order.Id,
		CustomerId:      order.CustomerId,
		Items:           items,
		TotalPrice:      order.TotalPrice,
		OrderStatus:     order.OrderStatus,
		PaymentStatus:   order.PaymentStatus,
		DeliveryDate:    order.DeliveryDate,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
	}
}
