package services

import (
	"testing"
	"time"

	"health_record_ms/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMedicineRepo struct {
	active []domain.Medicine
}

func (f *fakeMedicineRepo) GetByID(_ *gorm.DB, id uint) (*domain.Medicine, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeMedicineRepo) ListByUser(_ *gorm.DB, userID uint) ([]domain.Medicine, error) {
	return nil, nil
}
func (f *fakeMedicineRepo) Create(_ *gorm.DB, entity *domain.Medicine) (*domain.Medicine, error) {
	return entity, nil
}
func (f *fakeMedicineRepo) Update(_ *gorm.DB, entity *domain.Medicine) error { return nil }
func (f *fakeMedicineRepo) Delete(_ *gorm.DB, id uint) error                 { return nil }
func (f *fakeMedicineRepo) ListActive(_ *gorm.DB, at time.Time) ([]domain.Medicine, error) {
	return f.active, nil
}

type fakeAppointmentRepo struct {
	upcoming []domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ *gorm.DB, id uint) (*domain.Appointment, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAppointmentRepo) ListByUser(_ *gorm.DB, userID uint) ([]domain.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Create(_ *gorm.DB, entity *domain.Appointment) (*domain.Appointment, error) {
	return entity, nil
}
func (f *fakeAppointmentRepo) Update(_ *gorm.DB, entity *domain.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Delete(_ *gorm.DB, id uint) error                    { return nil }
func (f *fakeAppointmentRepo) ListStartingBetween(_ *gorm.DB, from, to time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range f.upcoming {
		if !a.StartsAt.Before(from) && a.StartsAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeReminderRepo struct {
	seen   map[string]uint
	nextID uint
	sent   []uint
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{seen: make(map[string]uint), nextID: 1}
}

func (f *fakeReminderRepo) CreateIfAbsent(_ *gorm.DB, entity *domain.Reminder) (bool, error) {
	if _, ok := f.seen[entity.DedupeHash]; ok {
		return false, nil
	}
	entity.ID = f.nextID
	f.nextID++
	f.seen[entity.DedupeHash] = entity.ID
	return true, nil
}

func (f *fakeReminderRepo) MarkSent(_ *gorm.DB, id uint, at time.Time) error {
	f.sent = append(f.sent, id)
	return nil
}

func TestDoseTimesExpansion(t *testing.T) {
	m := domain.Medicine{TimesPerDay: 2, FirstDoseAt: "08:00"}
	from := time.Date(2026, 1, 2, 7, 0, 0, 0, time.UTC)
	until := from.Add(24 * time.Hour)

	doses := doseTimes(m, from, until)

	require.Len(t, doses, 2)
	assert.Equal(t, time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC), doses[0])
	assert.Equal(t, time.Date(2026, 1, 2, 20, 0, 0, 0, time.UTC), doses[1])
}

func TestDoseTimesDefaultsOnBadSchedule(t *testing.T) {
	m := domain.Medicine{TimesPerDay: 0, FirstDoseAt: "whenever"}
	from := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	until := from.Add(24 * time.Hour)

	doses := doseTimes(m, from, until)

	require.Len(t, doses, 1)
	assert.Equal(t, time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC), doses[0])
}

func TestDoseTimesExcludesPastDoses(t *testing.T) {
	m := domain.Medicine{TimesPerDay: 2, FirstDoseAt: "08:00"}
	from := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	until := from.Add(12 * time.Hour)

	doses := doseTimes(m, from, until)

	require.Len(t, doses, 1)
	assert.Equal(t, time.Date(2026, 1, 2, 20, 0, 0, 0, time.UTC), doses[0])
}

// Two scans over the same window publish each occurrence exactly once.
func TestScanDeduplicates(t *testing.T) {
	users := newFakeUserRepo()
	user, err := users.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 7, 55, 0, 0, time.UTC)
	medicines := &fakeMedicineRepo{active: []domain.Medicine{
		{ID: 5, UserID: user.Id, Name: "Aspirin", Dosage: "100mg", TimesPerDay: 1, FirstDoseAt: "08:00"},
	}}
	reminders := newFakeReminderRepo()
	publisher := &fakePublisher{}

	svc := NewReminderService(nil, reminders, medicines, &fakeAppointmentRepo{}, users, publisher)

	svc.Scan(now)
	svc.Scan(now)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, "medicine", event.Kind)
	assert.Equal(t, user.Id, event.UserId)
	assert.Equal(t, "1234567890", event.Phone)
	assert.Len(t, reminders.sent, 1)
}

func TestScanPublishesAppointments(t *testing.T) {
	users := newFakeUserRepo()
	user, err := users.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	appointments := &fakeAppointmentRepo{upcoming: []domain.Appointment{
		{ID: 3, UserID: user.Id, Title: "Checkup", StartsAt: now.Add(10 * time.Minute)},
	}}
	reminders := newFakeReminderRepo()
	publisher := &fakePublisher{}

	svc := NewReminderService(nil, reminders, &fakeMedicineRepo{}, appointments, users, publisher)
	svc.Scan(now)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "appointment", publisher.events[0].Kind)
	assert.Contains(t, publisher.events[0].Message, "Checkup")
}

// A publish failure leaves the reminder unsent but still recorded, so the
// occurrence is not retried forever and not spammed either.
func TestScanPublishFailureSkipsMarkSent(t *testing.T) {
	users := newFakeUserRepo()
	user, err := users.Create(nil, &domain.User{Name: "Ada", Phone: "1234567890"})
	require.NoError(t, err)

	now := time.Date(2026, 1, 2, 7, 55, 0, 0, time.UTC)
	medicines := &fakeMedicineRepo{active: []domain.Medicine{
		{ID: 5, UserID: user.Id, Name: "Aspirin", TimesPerDay: 1, FirstDoseAt: "08:00"},
	}}
	reminders := newFakeReminderRepo()
	publisher := &fakePublisher{err: errFakeCache}

	svc := NewReminderService(nil, reminders, medicines, &fakeAppointmentRepo{}, users, publisher)
	svc.Scan(now)

	assert.Empty(t, publisher.events)
	assert.Empty(t, reminders.sent)
	assert.Len(t, reminders.seen, 1)
}
