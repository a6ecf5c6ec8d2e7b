package domain

import "time"

// Record tables. Every row is owned by exactly one user; ownership guards
// resolve the owner through the repositories before letting a request touch
// the row.

type Medicine struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	Dosage       string     `gorm:"size:100" json:"dosage"`
	Instructions string     `gorm:"size:500" json:"instructions"`
	TimesPerDay  int        `gorm:"not null;default:1" json:"times_per_day"`
	FirstDoseAt  string     `gorm:"size:5" json:"first_dose_at"` // "HH:MM"
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `gorm:"default:NULL" json:"end_date"`
	CreatedAt    *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"default:null" json:"updated_at"`
}

type Doctor struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Specialty string     `gorm:"size:100" json:"specialty"`
	Phone     string     `gorm:"size:100" json:"phone"`
	Address   string     `gorm:"size:300" json:"address"`
	CreatedAt *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `gorm:"default:null" json:"updated_at"`
}

type Appointment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	DoctorID  *uint      `gorm:"index;default:NULL" json:"doctor_id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	Location  string     `gorm:"size:300" json:"location"`
	Notes     string     `gorm:"size:1000" json:"notes"`
	StartsAt  time.Time  `gorm:"not null;index" json:"starts_at"`
	CreatedAt *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `gorm:"default:null" json:"updated_at"`
}

type Contact struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Name      string     `gorm:"size:200;not null" json:"name"`
	Relation  string     `gorm:"size:100" json:"relation"`
	Phone     string     `gorm:"size:100;not null" json:"phone"`
	CreatedAt *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `gorm:"default:null" json:"updated_at"`
}

type Document struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	StorageKey  string     `gorm:"size:300;not null;unique" json:"storage_key"`
	ContentType string     `gorm:"size:100" json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	Transcript  string     `gorm:"type:text" json:"transcript,omitempty"`
	CreatedAt   *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"default:null" json:"updated_at"`
}

// Reminder rows mark dispatched occurrences so the scheduler never publishes
// the same dose or appointment twice.
type Reminder struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Kind       string     `gorm:"size:20;not null" json:"kind"` // "medicine" | "appointment"
	SourceID   uint       `gorm:"not null" json:"source_id"`
	DueAt      time.Time  `gorm:"not null;index" json:"due_at"`
	SentAt     *time.Time `gorm:"default:NULL" json:"sent_at"`
	Message    string     `gorm:"size:500" json:"message"`
	CreatedAt  *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	DedupeHash string     `gorm:"size:100;not null;uniqueIndex" json:"-"`
}
