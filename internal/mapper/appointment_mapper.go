package mapper

import (
	"encoding/json"

	"healthlink-be/internal/entity"
	"healthlink-be/internal/model"

	"gorm.io/datatypes"
)

type AppointmentMapper struct{}

func NewAppointmentMapper() *AppointmentMapper {
	return &AppointmentMapper{}
}

func (m *AppointmentMapper) ToModel(e *entity.Appointment) *model.Appointment {
	var report datatypes.JSON
	if e.Report != nil {
		raw, _ := json.Marshal(e.Report)
		report = datatypes.JSON(raw)
	}
	return &model.Appointment{
		Id:              e.Id,
		PatientId:       e.PatientId,
		DoctorId:        e.DoctorId,
		AppointmentDate: e.AppointmentDate,
		AppointmentTime: e.AppointmentTime,
		Status:          e.Status,
		ConsultationFee: e.ConsultationFee,
		Report:          report,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (m *AppointmentMapper) ToEntity(mo *model.Appointment) *entity.Appointment {
	var report *entity.ConsultationReport
	if len(mo.Report) > 0 {
		report = &entity.ConsultationReport{}
		if err := json.Unmarshal(mo.Report, report); err != nil {
			report = nil
		}
	}
	return &entity.Appointment{
		Id:              mo.Id,
		PatientId:       mo.PatientId,
		DoctorId:        mo.DoctorId,
		AppointmentDate: mo.AppointmentDate,
		AppointmentTime: mo.AppointmentTime,
		Status:          mo.Status,
		ConsultationFee: mo.ConsultationFee,
		Report:          report,
		CreatedAt:       mo.CreatedAt,
		UpdatedAt:       mo.UpdatedAt,
	}
}

func (m *AppointmentMapper) ToEntities(models []*model.Appointment) []*entity.Appointment {
	entities := make([]*entity.Appointment, len(models))
	for i, mo := range models {
		entities[i] = m.ToEntity(mo)
	}
	return entities
}
