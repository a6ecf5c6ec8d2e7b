package services

import (
	"errors"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/repository"

	"gorm.io/gorm"
)

type IMedicineService interface {
	List(userID uint) ([]domain.Medicine, error)
	Get(id uint) (*domain.Medicine, error)
	Create(userID uint, req *request.MedicineUpsert) (*domain.Medicine, error)
	Update(id uint, req *request.MedicineUpsert) (*domain.Medicine, error)
	Delete(id uint) error
}

type MedicineService struct {
	db   *gorm.DB
	repo repository.IMedicineRepository
}

func NewMedicineService(db *gorm.DB, repo repository.IMedicineRepository) IMedicineService {
	return &MedicineService{db: db, repo: repo}
}

func (s *MedicineService) List(userID uint) ([]domain.Medicine, error) {
	return s.repo.ListByUser(s.db, userID)
}

func (s *MedicineService) Get(id uint) (*domain.Medicine, error) {
	m, err := s.repo.GetByID(s.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return m, err
}

func (s *MedicineService) Create(userID uint, req *request.MedicineUpsert) (*domain.Medicine, error) {
	return s.repo.Create(s.db, &domain.Medicine{
		UserID:       userID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Instructions: req.Instructions,
		TimesPerDay:  req.TimesPerDay,
		FirstDoseAt:  req.FirstDoseAt,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	})
}

func (s *MedicineService) Update(id uint, req *request.MedicineUpsert) (*domain.Medicine, error) {
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	m.Name = req.Name
	m.Dosage = req.Dosage
	m.Instructions = req.Instructions
	m.TimesPerDay = req.TimesPerDay
	m.FirstDoseAt = req.FirstDoseAt
	m.StartDate = req.StartDate
	m.EndDate = req.EndDate
	if err := s.repo.Update(s.db, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MedicineService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(s.db, id)
}
