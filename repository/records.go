package repository

import (
	"time"

	"health_record_ms/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IMedicineRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.Medicine, error)
	ListByUser(db *gorm.DB, userID uint) ([]domain.Medicine, error)
	Create(db *gorm.DB, entity *domain.Medicine) (*domain.Medicine, error)
	Update(db *gorm.DB, entity *domain.Medicine) error
	Delete(db *gorm.DB, id uint) error
	ListActive(db *gorm.DB, at time.Time) ([]domain.Medicine, error)
}

type MedicineRepository struct{}

func NewMedicineRepository() IMedicineRepository {
	return &MedicineRepository{}
}

func (r *MedicineRepository) GetByID(db *gorm.DB, id uint) (*domain.Medicine, error) {
	var m domain.Medicine
	if err := db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicineRepository) ListByUser(db *gorm.DB, userID uint) ([]domain.Medicine, error) {
	var list []domain.Medicine
	if err := db.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MedicineRepository) Create(db *gorm.DB, entity *domain.Medicine) (*domain.Medicine, error) {
	return entity, db.Create(entity).Error
}

func (r *MedicineRepository) Update(db *gorm.DB, entity *domain.Medicine) error {
	return db.Save(entity).Error
}

func (r *MedicineRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&domain.Medicine{}, id).Error
}

func (r *MedicineRepository) ListActive(db *gorm.DB, at time.Time) ([]domain.Medicine, error) {
	var list []domain.Medicine
	err := db.Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", at, at).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

type IDoctorRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.Doctor, error)
	ListByUser(db *gorm.DB, userID uint) ([]domain.Doctor, error)
	Create(db *gorm.DB, entity *domain.Doctor) (*domain.Doctor, error)
	Update(db *gorm.DB, entity *domain.Doctor) error
	Delete(db *gorm.DB, id uint) error
}

type DoctorRepository struct{}

func NewDoctorRepository() IDoctorRepository {
	return &DoctorRepository{}
}

func (r *DoctorRepository) GetByID(db *gorm.DB, id uint) (*domain.Doctor, error) {
	var d domain.Doctor
	if err := db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) ListByUser(db *gorm.DB, userID uint) ([]domain.Doctor, error) {
	var list []domain.Doctor
	if err := db.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *DoctorRepository) Create(db *gorm.DB, entity *domain.Doctor) (*domain.Doctor, error) {
	return entity, db.Create(entity).Error
}

func (r *DoctorRepository) Update(db *gorm.DB, entity *domain.Doctor) error {
	return db.Save(entity).Error
}

func (r *DoctorRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&domain.Doctor{}, id).Error
}

type IAppointmentRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.Appointment, error)
	ListByUser(db *gorm.DB, userID uint) ([]domain.Appointment, error)
	Create(db *gorm.DB, entity *domain.Appointment) (*domain.Appointment, error)
	Update(db *gorm.DB, entity *domain.Appointment) error
	Delete(db *gorm.DB, id uint) error
	ListStartingBetween(db *gorm.DB, from, to time.Time) ([]domain.Appointment, error)
}

type AppointmentRepository struct{}

func NewAppointmentRepository() IAppointmentRepository {
	return &AppointmentRepository{}
}

func (r *AppointmentRepository) GetByID(db *gorm.DB, id uint) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) ListByUser(db *gorm.DB, userID uint) ([]domain.Appointment, error) {
	var list []domain.Appointment
	if err := db.Where("user_id = ?", userID).Order("starts_at").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentRepository) Create(db *gorm.DB, entity *domain.Appointment) (*domain.Appointment, error) {
	return entity, db.Create(entity).Error
}

func (r *AppointmentRepository) Update(db *gorm.DB, entity *domain.Appointment) error {
	return db.Save(entity).Error
}

func (r *AppointmentRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&domain.Appointment{}, id).Error
}

func (r *AppointmentRepository) ListStartingBetween(db *gorm.DB, from, to time.Time) ([]domain.Appointment, error) {
	var list []domain.Appointment
	err := db.Where("starts_at >= ? AND starts_at < ?", from, to).Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

type IContactRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.Contact, error)
	ListByUser(db *gorm.DB, userID uint) ([]domain.Contact, error)
	Create(db *gorm.DB, entity *domain.Contact) (*domain.Contact, error)
	Update(db *gorm.DB, entity *domain.Contact) error
	Delete(db *gorm.DB, id uint) error
}

type ContactRepository struct{}

func NewContactRepository() IContactRepository {
	return &ContactRepository{}
}

func (r *ContactRepository) GetByID(db *gorm.DB, id uint) (*domain.Contact, error) {
	var c domain.Contact
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) ListByUser(db *gorm.DB, userID uint) ([]domain.Contact, error) {
	var list []domain.Contact
	if err := db.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ContactRepository) Create(db *gorm.DB, entity *domain.Contact) (*domain.Contact, error) {
	return entity, db.Create(entity).Error
}

func (r *ContactRepository) Update(db *gorm.DB, entity *domain.Contact) error {
	return db.Save(entity).Error
}

func (r *ContactRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&domain.Contact{}, id).Error
}

type IDocumentRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.Document, error)
	ListByUser(db *gorm.DB, userID uint) ([]domain.Document, error)
	Create(db *gorm.DB, entity *domain.Document) (*domain.Document, error)
	Update(db *gorm.DB, entity *domain.Document) error
	Delete(db *gorm.DB, id uint) error
}

type DocumentRepository struct{}

func NewDocumentRepository() IDocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) GetByID(db *gorm.DB, id uint) (*domain.Document, error) {
	var d domain.Document
	if err := db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) ListByUser(db *gorm.DB, userID uint) ([]domain.Document, error) {
	var list []domain.Document
	if err := db.Where("user_id = ?", userID).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *DocumentRepository) Create(db *gorm.DB, entity *domain.Document) (*domain.Document, error) {
	return entity, db.Create(entity).Error
}

func (r *DocumentRepository) Update(db *gorm.DB, entity *domain.Document) error {
	return db.Save(entity).Error
}

func (r *DocumentRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&domain.Document{}, id).Error
}

type IReminderRepository interface {
	CreateIfAbsent(db *gorm.DB, entity *domain.Reminder) (bool, error)
	MarkSent(db *gorm.DB, id uint, at time.Time) error
}

type ReminderRepository struct{}

func NewReminderRepository() IReminderRepository {
	return &ReminderRepository{}
}

// CreateIfAbsent relies on the unique dedupe_hash index; an occurrence that
// was already recorded reports false without touching the row.
func (r *ReminderRepository) CreateIfAbsent(db *gorm.DB, entity *domain.Reminder) (bool, error) {
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dedupe_hash"}},
		DoNothing: true,
	}).Create(entity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ReminderRepository) MarkSent(db *gorm.DB, id uint, at time.Time) error {
	return db.Model(&domain.Reminder{}).
		Where("id = ?", id).
		Update("sent_at", at).Error
}
