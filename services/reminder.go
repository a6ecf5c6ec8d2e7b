package services

import (
	"fmt"
	"time"

	"health_record_ms/config"
	"health_record_ms/domain"
	"health_record_ms/dtos/request"
	"health_record_ms/repository"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// ReminderService scans upcoming medicine doses and appointments and fans the
// due ones out to Kafka. The unique dedupe key on the reminders table keeps
// an occurrence from ever being published twice.
type ReminderService struct {
	db           *gorm.DB
	reminders    repository.IReminderRepository
	medicines    repository.IMedicineRepository
	appointments repository.IAppointmentRepository
	users        repository.IUserRepository
	publisher    IEventPublisher
}

func NewReminderService(
	db *gorm.DB,
	reminders repository.IReminderRepository,
	medicines repository.IMedicineRepository,
	appointments repository.IAppointmentRepository,
	users repository.IUserRepository,
	publisher IEventPublisher,
) *ReminderService {
	return &ReminderService{
		db:           db,
		reminders:    reminders,
		medicines:    medicines,
		appointments: appointments,
		users:        users,
		publisher:    publisher,
	}
}

func (s *ReminderService) scanInterval() time.Duration {
	secs := config.Conf.Application.Reminder.ScanIntervalInSeconds
	if secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

func (s *ReminderService) window() time.Duration {
	mins := config.Conf.Application.Reminder.WindowInMinutes
	if mins <= 0 {
		mins = 15
	}
	return time.Duration(mins) * time.Minute
}

// Run blocks until stop is closed.
func (s *ReminderService) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(s.scanInterval())
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			log.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Scan(time.Now())
		}
	}
}

// Scan runs a single pass over the window starting at now.
func (s *ReminderService) Scan(now time.Time) {
	until := now.Add(s.window())

	medicines, err := s.medicines.ListActive(s.db, now)
	if err != nil {
		log.Error("reminder scan: list medicines: ", err)
	} else {
		for _, m := range medicines {
			for _, dueAt := range doseTimes(m, now, until) {
				s.dispatch(&domain.Reminder{
					UserID:     m.UserID,
					Kind:       "medicine",
					SourceID:   m.ID,
					DueAt:      dueAt,
					Message:    fmt.Sprintf("Time to take %s %s", m.Name, m.Dosage),
					DedupeHash: fmt.Sprintf("medicine:%d:%s", m.ID, dueAt.UTC().Format(time.RFC3339)),
				})
			}
		}
	}

	appointments, err := s.appointments.ListStartingBetween(s.db, now, until)
	if err != nil {
		log.Error("reminder scan: list appointments: ", err)
		return
	}
	for _, a := range appointments {
		s.dispatch(&domain.Reminder{
			UserID:     a.UserID,
			Kind:       "appointment",
			SourceID:   a.ID,
			DueAt:      a.StartsAt,
			Message:    fmt.Sprintf("Upcoming appointment: %s at %s", a.Title, a.StartsAt.Format("15:04")),
			DedupeHash: fmt.Sprintf("appointment:%d:%s", a.ID, a.StartsAt.UTC().Format(time.RFC3339)),
		})
	}
}

func (s *ReminderService) dispatch(reminder *domain.Reminder) {
	created, err := s.reminders.CreateIfAbsent(s.db, reminder)
	if err != nil {
		log.Error("reminder dispatch: ", err)
		return
	}
	if !created {
		return
	}
	user, err := s.users.GetByID(s.db, reminder.UserID)
	if err != nil {
		log.Error("reminder dispatch: user lookup: ", err)
		return
	}
	err = s.publisher.PublishReminderDue(&request.ReminderDueEvent{
		ReminderId: reminder.ID,
		UserId:     user.Id,
		Phone:      user.Phone,
		Kind:       reminder.Kind,
		Message:    reminder.Message,
		DueAt:      reminder.DueAt,
	})
	if err != nil {
		log.Error("reminder dispatch: publish: ", err)
		return
	}
	if err := s.reminders.MarkSent(s.db, reminder.ID, time.Now()); err != nil {
		log.Error("reminder dispatch: mark sent: ", err)
	}
}

// doseTimes expands a medicine's daily schedule into the concrete dose
// instants that fall inside [from, until). Doses are spread evenly over the
// day starting at FirstDoseAt.
func doseTimes(m domain.Medicine, from, until time.Time) []time.Time {
	var hour, minute int
	if _, err := fmt.Sscanf(m.FirstDoseAt, "%d:%d", &hour, &minute); err != nil {
		hour, minute = 8, 0
	}
	perDay := m.TimesPerDay
	if perDay < 1 {
		perDay = 1
	}
	gap := time.Duration(24/perDay) * time.Hour

	var out []time.Time
	for day := 0; day < 2; day++ {
		base := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location()).
			AddDate(0, 0, day)
		for i := 0; i < perDay; i++ {
			dose := base.Add(time.Duration(i) * gap)
			if !dose.Before(from) && dose.Before(until) {
				out = append(out, dose)
			}
		}
	}
	return out
}
