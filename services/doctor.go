package services

import (
	"errors"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/repository"

	"gorm.io/gorm"
)

type IDoctorService interface {
	List(userID uint) ([]domain.Doctor, error)
	Get(id uint) (*domain.Doctor, error)
	Create(userID uint, req *request.DoctorUpsert) (*domain.Doctor, error)
	Update(id uint, req *request.DoctorUpsert) (*domain.Doctor, error)
	Delete(id uint) error
}

type DoctorService struct {
	db   *gorm.DB
	repo repository.IDoctorRepository
}

func NewDoctorService(db *gorm.DB, repo repository.IDoctorRepository) IDoctorService {
	return &DoctorService{db: db, repo: repo}
}

func (s *DoctorService) List(userID uint) ([]domain.Doctor, error) {
	return s.repo.ListByUser(s.db, userID)
}

func (s *DoctorService) Get(id uint) (*domain.Doctor, error) {
	d, err := s.repo.GetByID(s.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return d, err
}

func (s *DoctorService) Create(userID uint, req *request.DoctorUpsert) (*domain.Doctor, error) {
	return s.repo.Create(s.db, &domain.Doctor{
		UserID:    userID,
		Name:      req.Name,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Address:   req.Address,
	})
}

func (s *DoctorService) Update(id uint, req *request.DoctorUpsert) (*domain.Doctor, error) {
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	d.Name = req.Name
	d.Specialty = req.Specialty
	d.Phone = req.Phone
	d.Address = req.Address
	if err := s.repo.Update(s.db, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DoctorService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(s.db, id)
}
