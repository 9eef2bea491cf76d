package service

import (
	"context"
	"fmt"
	"time"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"
	"healthlink-be/internal/pkg/mailer"
	"healthlink-be/internal/repository/specification"
	"healthlink-be/internal/repository/unitofwork"
	"healthlink-be/pkg/events"
	pktNats "healthlink-be/pkg/nats"

	"github.com/google/uuid"
)

type IAppointmentService interface {
	Create(ctx context.Context, patientId uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, userId uuid.UUID, role string) ([]*dto.AppointmentResponse, error)
	Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, patientId uuid.UUID, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, patientId uuid.UUID, id uuid.UUID) error
	UpdateReport(ctx context.Context, doctorId uuid.UUID, id uuid.UUID, req *dto.UpdateReportRequest) (*dto.AppointmentResponse, error)
}

type appointmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
}

func NewAppointmentService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, emailService mailer.IEmailService) IAppointmentService {
	return &appointmentService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
	}
}

func (s *appointmentService) Create(ctx context.Context, patientId uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, apperror.Validation("appointmentDate must be YYYY-MM-DD")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	profile, err := uow.UserRepository().FindDoctorProfile(ctx, req.DoctorId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Doctor not found")
	}

	// Slot conflict: any non-cancelled appointment already holding this
	// doctor/date/time wins.
	existing, err := uow.AppointmentRepository().FindOne(ctx,
		specification.BySlot{DoctorID: req.DoctorId, Date: date, Time: req.AppointmentTime},
		specification.NotCancelled{},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("This time slot is already booked")
	}

	appointment := &entity.Appointment{
		Id:              uuid.New(),
		PatientId:       patientId,
		DoctorId:        req.DoctorId,
		AppointmentDate: date,
		AppointmentTime: req.AppointmentTime,
		Status:          entity.AppointmentStatusPending,
		ConsultationFee: profile.ConsultationFee,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := uow.AppointmentRepository().Create(ctx, appointment); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeAppointmentBooked, appointment)
	s.sendConfirmation(ctx, appointment)

	return s.populate(ctx, appointment)
}

// sendConfirmation mails the patient off the request path. Failures are
// logged by the mailer, never surfaced to the booking call.
func (s *appointmentService) sendConfirmation(ctx context.Context, appointment *entity.Appointment) {
	if s.emailService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	patient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: appointment.PatientId})
	if err != nil || patient == nil {
		return
	}
	doctor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: appointment.DoctorId})
	if err != nil || doctor == nil {
		return
	}

	go func() {
		emailErr := s.emailService.SendAppointmentConfirmation(
			patient.Email,
			doctor.Name,
			appointment.AppointmentDate.Format("2006-01-02"),
			appointment.AppointmentTime,
		)
		if emailErr != nil {
			fmt.Printf("Error sending appointment confirmation email: %v\n", emailErr)
		}
	}()
}

func (s *appointmentService) publish(ctx context.Context, eventType string, appointment *entity.Appointment) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewEvent(eventType, map[string]interface{}{
		"appointment_id": appointment.Id.String(),
		"patient_id":     appointment.PatientId.String(),
		"doctor_id":      appointment.DoctorId.String(),
		"date":           appointment.AppointmentDate.Format("2006-01-02"),
		"time":           appointment.AppointmentTime,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func (s *appointmentService) List(ctx context.Context, userId uuid.UUID, role string) ([]*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var scope specification.Specification
	if role == entity.UserRoleDoctor {
		scope = specification.ByDoctor{DoctorID: userId}
	} else {
		scope = specification.ByPatient{PatientID: userId}
	}

	appointments, err := uow.AppointmentRepository().FindAll(ctx,
		scope,
		specification.OrderBy{Field: "appointment_date", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AppointmentResponse, 0, len(appointments))
	for _, apt := range appointments {
		res, err := s.populate(ctx, apt)
		if err != nil {
			return nil, err
		}
		responses = append(responses, res)
	}
	return responses, nil
}

func (s *appointmentService) Get(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointment, err := uow.AppointmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NotFound("Appointment not found")
	}
	if appointment.PatientId != userId && appointment.DoctorId != userId {
		return nil, apperror.AccessDenied("You do not have access to this appointment")
	}
	return s.populate(ctx, appointment)
}

func (s *appointmentService) Update(ctx context.Context, patientId uuid.UUID, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	appointment, err := uow.AppointmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NotFound("Appointment not found")
	}
	if appointment.PatientId != patientId {
		return nil, apperror.AccessDenied("You can only update your own appointments")
	}
	if appointment.Status != entity.AppointmentStatusPending {
		return nil, apperror.Validation("Only pending appointments can be updated")
	}

	newDate := appointment.AppointmentDate
	if req.AppointmentDate != "" {
		newDate, err = time.Parse("2006-01-02", req.AppointmentDate)
		if err != nil {
			return nil, apperror.Validation("appointmentDate must be YYYY-MM-DD")
		}
	}
	newTime := appointment.AppointmentTime
	if req.AppointmentTime != "" {
		newTime = req.AppointmentTime
	}

	if req.AppointmentDate != "" || req.AppointmentTime != "" {
		// The target slot must be free, ignoring this appointment itself.
		existing, err := uow.AppointmentRepository().FindOne(ctx,
			specification.BySlot{DoctorID: appointment.DoctorId, Date: newDate, Time: newTime},
			specification.NotCancelled{},
			specification.ExceptID{ID: appointment.Id},
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.Validation("This time slot is already booked")
		}
	}

	appointment.AppointmentDate = newDate
	appointment.AppointmentTime = newTime
	appointment.UpdatedAt = time.Now()

	if err := uow.AppointmentRepository().Update(ctx, appointment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return s.populate(ctx, appointment)
}

// Cancel marks the appointment cancelled, freeing its slot. The row is kept
// for history.
func (s *appointmentService) Cancel(ctx context.Context, patientId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	appointment, err := uow.AppointmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if appointment == nil {
		return apperror.NotFound("Appointment not found")
	}
	if appointment.PatientId != patientId {
		return apperror.AccessDenied("You can only access your own appointments")
	}

	appointment.Status = entity.AppointmentStatusCancelled
	appointment.UpdatedAt = time.Now()
	if err := uow.AppointmentRepository().Update(ctx, appointment); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publish(ctx, events.TypeAppointmentCancelled, appointment)
	return nil
}

// UpdateReport lets the doctor attach a consultation report, which also
// completes the appointment.
func (s *appointmentService) UpdateReport(ctx context.Context, doctorId uuid.UUID, id uuid.UUID, req *dto.UpdateReportRequest) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	appointment, err := uow.AppointmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, apperror.NotFound("Appointment not found")
	}
	if appointment.DoctorId != doctorId {
		return nil, apperror.AccessDenied("You can only access your own appointments")
	}

	appointment.Status = entity.AppointmentStatusCompleted
	if req.ConsultationReport != nil {
		appointment.Report = req.ConsultationReport
	}
	appointment.UpdatedAt = time.Now()

	if err := uow.AppointmentRepository().Update(ctx, appointment); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return s.populate(ctx, appointment)
}

// populate attaches the doctor and patient briefs the frontend renders
// alongside the appointment.
func (s *appointmentService) populate(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	res := appointmentToResponse(appointment)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doctorUser, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: appointment.DoctorId})
	if err != nil {
		return nil, err
	}
	if doctorUser != nil {
		profile, err := uow.UserRepository().FindDoctorProfile(ctx, appointment.DoctorId)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			res.Doctor = doctorToResponse(&entity.Doctor{User: *doctorUser, Profile: *profile})
			res.Doctor.Availability = nil
		}
	}

	patient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: appointment.PatientId})
	if err != nil {
		return nil, err
	}
	if patient != nil {
		res.Patient = userToResponse(patient)
	}

	return res, nil
}
