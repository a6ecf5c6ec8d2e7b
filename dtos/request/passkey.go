package request

import "time"

type StartPasskeyRegistration struct {
	Phone     string     `json:"phone" validate:"required,phone"`
	Name      string     `json:"name" validate:"required"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `json:"gender" validate:"omitempty,oneof=female male other"`
}

type StartPasskeyLogin struct {
	CredentialId string `json:"credential_id" validate:"required"`
}
