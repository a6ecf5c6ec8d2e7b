package services

import (
	"errors"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/repository"

	"gorm.io/gorm"
)

type IAppointmentService interface {
	List(userID uint) ([]domain.Appointment, error)
	Get(id uint) (*domain.Appointment, error)
	Create(userID uint, req *request.AppointmentUpsert) (*domain.Appointment, error)
	Update(id uint, req *request.AppointmentUpsert) (*domain.Appointment, error)
	Delete(id uint) error
}

type AppointmentService struct {
	db      *gorm.DB
	repo    repository.IAppointmentRepository
	doctors repository.IDoctorRepository
}

func NewAppointmentService(db *gorm.DB, repo repository.IAppointmentRepository, doctors repository.IDoctorRepository) IAppointmentService {
	return &AppointmentService{db: db, repo: repo, doctors: doctors}
}

func (s *AppointmentService) List(userID uint) ([]domain.Appointment, error) {
	return s.repo.ListByUser(s.db, userID)
}

func (s *AppointmentService) Get(id uint) (*domain.Appointment, error) {
	a, err := s.repo.GetByID(s.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

func (s *AppointmentService) checkDoctor(userID uint, doctorID *uint) error {
	if doctorID == nil {
		return nil
	}
	d, err := s.doctors.GetByID(s.db, *doctorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	// a referenced doctor must belong to the same user
	if d.UserID != userID {
		return domain.ErrNotFound
	}
	return nil
}

func (s *AppointmentService) Create(userID uint, req *request.AppointmentUpsert) (*domain.Appointment, error) {
	if err := s.checkDoctor(userID, req.DoctorId); err != nil {
		return nil, err
	}
	return s.repo.Create(s.db, &domain.Appointment{
		UserID:   userID,
		DoctorID: req.DoctorId,
		Title:    req.Title,
		Location: req.Location,
		Notes:    req.Notes,
		StartsAt: req.StartsAt,
	})
}

func (s *AppointmentService) Update(id uint, req *request.AppointmentUpsert) (*domain.Appointment, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkDoctor(a.UserID, req.DoctorId); err != nil {
		return nil, err
	}
	a.DoctorID = req.DoctorId
	a.Title = req.Title
	a.Location = req.Location
	a.Notes = req.Notes
	a.StartsAt = req.StartsAt
	if err := s.repo.Update(s.db, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(s.db, id)
}
