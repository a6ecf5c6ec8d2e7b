package repository

import (
	"health_record_ms/domain"

	"github.com/go-webauthn/webauthn/webauthn"
	"gorm.io/gorm"
)

type IUserRepository interface {
	GetByID(db *gorm.DB, id uint) (*domain.User, error)
	GetByPhone(db *gorm.DB, phone string) (*domain.User, error)
	Create(db *gorm.DB, entity *domain.User) (*domain.User, error)
	Update(db *gorm.DB, entity *domain.User) error
	Activate(db *gorm.DB, id uint) error
	GetWithPasskeys(db *gorm.DB, userId uint) (*domain.User, error)
	GetPasskeyByCredentialID(db *gorm.DB, credID []byte) (*domain.Passkey, error)
	SavePasskey(db *gorm.DB, authBytes []byte, userID uint, cred *webauthn.Credential) error
	UpdatePasskeyAfterLogin(db *gorm.DB, credID []byte, auth []byte, signCount uint32) error
	FindUserByCredentialID(db *gorm.DB, credID []byte) (*domain.User, error)
	DeletePasskeyByOwner(db *gorm.DB, credID []byte, userID uint) error
}

type UserRepository struct {
}

func NewUserRepository() IUserRepository {
	return &UserRepository{}
}

func (u *UserRepository) GetByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetByPhone(db *gorm.DB, phone string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) Create(db *gorm.DB, entity *domain.User) (*domain.User, error) {
	return entity, db.Create(entity).Error
}

func (u *UserRepository) Update(db *gorm.DB, entity *domain.User) error {
	return db.Save(entity).Error
}

func (u *UserRepository) Activate(db *gorm.DB, id uint) error {
	return db.Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", true).Error
}

func (u *UserRepository) GetWithPasskeys(db *gorm.DB, userId uint) (*domain.User, error) {
	var user domain.User
	err := db.Preload("Passkeys").First(&user, userId).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) GetPasskeyByCredentialID(db *gorm.DB, credID []byte) (*domain.Passkey, error) {
	var passkey domain.Passkey
	if err := db.Where("credential_id = ?", credID).First(&passkey).Error; err != nil {
		return nil, err
	}
	return &passkey, nil
}

func (u *UserRepository) SavePasskey(db *gorm.DB, authBytes []byte, userID uint, cred *webauthn.Credential) error {
	passkey := domain.Passkey{
		UserID:          userID,
		CredentialID:    cred.ID,
		PublicKey:       cred.PublicKey,
		SignCount:       cred.Authenticator.SignCount,
		AAGUID:          cred.Authenticator.AAGUID,
		AttestationType: cred.AttestationType,
		BackupState:     cred.Flags.BackupState,
		BackupEligible:  cred.Flags.BackupEligible,
		Authenticator:   authBytes,
	}

	if err := db.Create(&passkey).Error; err != nil {
		return err
	}
	return nil
}

func (u *UserRepository) UpdatePasskeyAfterLogin(db *gorm.DB, credID []byte, auth []byte, signCount uint32) error {
	return db.Model(&domain.Passkey{}).
		Where("credential_id = ?", credID).
		Updates(map[string]interface{}{
			"authenticator": auth,
			"sign_count":    signCount,
		}).Error
}

func (u *UserRepository) FindUserByCredentialID(db *gorm.DB, credID []byte) (*domain.User, error) {
	var user domain.User

	err := db.Preload("Passkeys").
		Joins("JOIN user_passkeys ON users.id = user_passkeys.user_id").
		Where("user_passkeys.credential_id = ?", credID).
		First(&user).Error

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (u *UserRepository) DeletePasskeyByOwner(db *gorm.DB, credID []byte, userID uint) error {
	res := db.Where("credential_id = ? AND user_id = ?", credID, userID).
		Delete(&domain.Passkey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
