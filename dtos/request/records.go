package request

import "time"

type MedicineUpsert struct {
	Name         string     `json:"name" validate:"required"`
	Dosage       string     `json:"dosage"`
	Instructions string     `json:"instructions"`
	TimesPerDay  int        `json:"times_per_day" validate:"required,min=1,max=24"`
	FirstDoseAt  string     `json:"first_dose_at" validate:"omitempty,len=5"`
	StartDate    *time.Time `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date"`
}

type DoctorUpsert struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Address   string `json:"address"`
}

type AppointmentUpsert struct {
	DoctorId *uint     `json:"doctor_id"`
	Title    string    `json:"title" validate:"required"`
	Location string    `json:"location"`
	Notes    string    `json:"notes"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
}

type ContactUpsert struct {
	Name     string `json:"name" validate:"required"`
	Relation string `json:"relation"`
	Phone    string `json:"phone" validate:"required,phone"`
}

type DocumentCreate struct {
	Title       string `json:"title" validate:"required"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes" validate:"omitempty,min=0"`
}
