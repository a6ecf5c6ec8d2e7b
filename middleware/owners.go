package middleware

import (
	"errors"
	"strconv"

	"health_record_ms/domain"
	"health_record_ms/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Per-resource owner resolvers. Each one is declared on the route that uses
// it, so the guard never has to guess which path segment names the owner.

func pathID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id < 1 {
		return 0, domain.ErrNotFound
	}
	return uint(id), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// PathUserId treats the path parameter itself as the owner id.
func PathUserId(param string) OwnerResolver {
	return func(c *fiber.Ctx) (uint, error) {
		return pathID(c, param)
	}
}

func MedicineOwner(db *gorm.DB, repo repository.IMedicineRepository, param string) OwnerResolver {
	return func(c *fiber.Ctx) (uint, error) {
		id, err := pathID(c, param)
		if err != nil {
			return 0, err
		}
		m, err := repo.GetByID(db, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		return m.UserID, nil
	}
}

func DoctorOwner(db *gorm.DB, repo repository.IDoctorRepository, param string) OwnerResolver {
	return func(c *fiber.Ctx) (uint, error) {
		id, err := pathID(c, param)
		if err != nil {
			return 0, err
		}
		d, err := repo.GetByID(db, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		return d.UserID, nil
	}
}

func AppointmentOwner(db *gorm.DB, repo repository.IAppointmentRepository, param string) OwnerResolver {
	return func(c *fiber.Ctx) (uint, error) {
		id, err := pathID(c, param)
		if err != nil {
			return 0, err
		}
		a, err := repo.GetByID(db, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		return a.UserID, nil
	}
}

func ContactOwner(db *gorm.DB, repo repository.IContactRepository, param string) OwnerResolver {
	return func(c *fiber.Ctx) (uint, error) {
		id, err := pathID(c, param)
		if err != nil {
			return 0, err
		}
		ct, err := repo.GetByID(db, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		return ct.UserID, nil
	}
}

func DocumentOwner(db *gorm.DB, repo repository.IDocumentRepository, param string) OwnerResolver {
	return func(c *fiber.Ctx) (uint, error) {
		id, err := pathID(c, param)
		if err != nil {
			return 0, err
		}
		d, err := repo.GetByID(db, id)
		if err != nil {
			return 0, mapNotFound(err)
		}
		return d.UserID, nil
	}
}
