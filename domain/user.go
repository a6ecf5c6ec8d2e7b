package domain

import (
	"strconv"
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

type User struct {
	Id        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `gorm:"default:null" json:"updated_at"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Phone     string     `gorm:"size:100;not null;unique" json:"phone"`
	BirthDate *time.Time `gorm:"default:NULL" json:"birth_date"`
	Gender    string     `gorm:"size:20" json:"gender"`
	IsActive  bool       `gorm:"not null;default:false" json:"is_active"`
	Passkeys  []Passkey  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_passkeys"`
}

func (u User) WebAuthnID() []byte {
	return []byte(strconv.Itoa(int(u.Id)))
}
func (u User) WebAuthnName() string {
	return u.Phone
}
func (u User) WebAuthnDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Phone
}
func (u User) WebAuthnCredentials() []webauthn.Credential {
	var creds []webauthn.Credential
	for _, p := range u.Passkeys {
		creds = append(creds, webauthn.Credential{
			ID:        p.CredentialID,
			PublicKey: p.PublicKey,
			Authenticator: webauthn.Authenticator{
				SignCount: p.SignCount,
			},
		})
	}
	return creds
}
