package services

import (
	"errors"

	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/repository"

	"gorm.io/gorm"
)

type IContactService interface {
	List(userID uint) ([]domain.Contact, error)
	Get(id uint) (*domain.Contact, error)
	Create(userID uint, req *request.ContactUpsert) (*domain.Contact, error)
	Update(id uint, req *request.ContactUpsert) (*domain.Contact, error)
	Delete(id uint) error
}

type ContactService struct {
	db   *gorm.DB
	repo repository.IContactRepository
}

func NewContactService(db *gorm.DB, repo repository.IContactRepository) IContactService {
	return &ContactService{db: db, repo: repo}
}

func (s *ContactService) List(userID uint) ([]domain.Contact, error) {
	return s.repo.ListByUser(s.db, userID)
}

func (s *ContactService) Get(id uint) (*domain.Contact, error) {
	c, err := s.repo.GetByID(s.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (s *ContactService) Create(userID uint, req *request.ContactUpsert) (*domain.Contact, error) {
	return s.repo.Create(s.db, &domain.Contact{
		UserID:   userID,
		Name:     req.Name,
		Relation: req.Relation,
		Phone:    req.Phone,
	})
}

func (s *ContactService) Update(id uint, req *request.ContactUpsert) (*domain.Contact, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Relation = req.Relation
	c.Phone = req.Phone
	if err := s.repo.Update(s.db, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(s.db, id)
}
