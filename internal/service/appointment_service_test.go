package service

import (
	"context"
	"testing"

	"healthlink-be/internal/dto"
	"healthlink-be/internal/entity"
	"healthlink-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDoctor(t *testing.T, factory *fakeFactory, fee float64) uuid.UUID {
	t.Helper()
	doctorId := uuid.New()
	repo := factory.NewUnitOfWork(context.Background()).UserRepository()
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		Id:    doctorId,
		Name:  "Dr. Test",
		Email: doctorId.String() + "@example.com",
		Role:  entity.UserRoleDoctor,
	}))
	require.NoError(t, repo.CreateDoctorProfile(context.Background(), &entity.DoctorProfile{
		Id:              uuid.New(),
		UserId:          doctorId,
		Specialization:  "Cardiology",
		ConsultationFee: fee,
		Location:        "Mumbai",
	}))
	return doctorId
}

func seedPatient(t *testing.T, factory *fakeFactory) uuid.UUID {
	t.Helper()
	patientId := uuid.New()
	repo := factory.NewUnitOfWork(context.Background()).UserRepository()
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		Id:    patientId,
		Name:  "Pat Example",
		Email: patientId.String() + "@example.com",
		Role:  entity.UserRolePatient,
	}))
	return patientId
}

func TestCreateAppointmentUsesProfileFee(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 150)
	patientId := seedPatient(t, factory)

	res, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentStatusPending, res.Status)
	assert.Equal(t, 150.0, res.ConsultationFee)
	assert.Equal(t, "2026-09-15", res.AppointmentDate)
	require.NotNil(t, res.Doctor)
	assert.Equal(t, "Dr. Test", res.Doctor.Name)
	assert.Nil(t, res.Doctor.Availability)
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	patientId := seedPatient(t, factory)

	_, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        uuid.New(),
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)

	req := &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	}
	_, err := svc.Create(context.Background(), patientId, req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), seedPatient(t, factory), req)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCancelledAppointmentFreesSlot(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)

	req := &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	}
	first, err := svc.Create(context.Background(), patientId, req)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), patientId, first.Id))

	_, err = svc.Create(context.Background(), seedPatient(t, factory), req)
	assert.NoError(t, err)
}

func TestCreateAppointmentRejectsBadDate(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		DoctorId:        uuid.New(),
		AppointmentDate: "15-09-2026",
		AppointmentTime: "09:30",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestGetAppointmentParticipantOnly(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)

	res, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), patientId, res.Id)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), doctorId, res.Id)
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), uuid.New(), res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindAccessDenied))
}

func TestUpdateAppointmentReschedule(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)

	res, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)

	// Moving to the same slot is allowed; the appointment does not
	// conflict with itself.
	updated, err := svc.Update(context.Background(), patientId, res.Id, &dto.UpdateAppointmentRequest{
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:30", updated.AppointmentTime)

	updated, err = svc.Update(context.Background(), patientId, res.Id, &dto.UpdateAppointmentRequest{
		AppointmentDate: "2026-09-16",
		AppointmentTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-16", updated.AppointmentDate)
	assert.Equal(t, "10:00", updated.AppointmentTime)
}

func TestUpdateAppointmentSlotTaken(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)

	_, err := svc.Create(context.Background(), seedPatient(t, factory), &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:00",
	})
	require.NoError(t, err)

	mine, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), patientId, mine.Id, &dto.UpdateAppointmentRequest{
		AppointmentTime: "10:00",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateReportCompletesAppointment(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)

	res, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)

	// Patients cannot file reports.
	_, err = svc.UpdateReport(context.Background(), patientId, res.Id, &dto.UpdateReportRequest{})
	assert.True(t, apperror.IsKind(err, apperror.KindAccessDenied))

	report := &entity.ConsultationReport{Diagnosis: "Tension headache"}
	updated, err := svc.UpdateReport(context.Background(), doctorId, res.Id, &dto.UpdateReportRequest{
		ConsultationReport: report,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, updated.Status)
	require.NotNil(t, updated.Report)
	assert.Equal(t, "Tension headache", updated.Report.Diagnosis)

	// Completed appointments can no longer be rescheduled.
	_, err = svc.Update(context.Background(), patientId, res.Id, &dto.UpdateAppointmentRequest{
		AppointmentTime: "11:00",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestListAppointmentsScopedByRole(t *testing.T) {
	factory := newFakeFactory()
	svc := NewAppointmentService(factory, nil, nil)
	doctorId := seedDoctor(t, factory, 100)
	patientId := seedPatient(t, factory)
	otherPatient := seedPatient(t, factory)

	_, err := svc.Create(context.Background(), patientId, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "09:30",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), otherPatient, &dto.CreateAppointmentRequest{
		DoctorId:        doctorId,
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:00",
	})
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), patientId, entity.UserRolePatient)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	docs, err := svc.List(context.Background(), doctorId, entity.UserRoleDoctor)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
