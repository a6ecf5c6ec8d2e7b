package response

import "github.com/go-webauthn/webauthn/protocol"

type RegistrationOptions struct {
	UserHandle string                       `json:"user_handle"`
	Options    *protocol.CredentialCreation `json:"options"`
}

type VerifiedCredential struct {
	UserId       uint   `json:"user_id"`
	CredentialId string `json:"credential_id"`
}

type SessionUser struct {
	UserId   uint   `json:"user_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}
