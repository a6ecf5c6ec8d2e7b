package controller

import (
	"health_record_ms/dtos/request"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IDoctorController interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type DoctorController struct {
	service services.IDoctorService
}

func NewDoctorController(service services.IDoctorService) IDoctorController {
	return &DoctorController{service: service}
}

func (dc *DoctorController) List(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	list, err := dc.service.List(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (dc *DoctorController) Get(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	d, err := dc.service.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d)
}

func (dc *DoctorController) Create(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	body := c.Locals("body").(*request.DoctorUpsert)
	d, err := dc.service.Create(userID, body)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (dc *DoctorController) Update(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	body := c.Locals("body").(*request.DoctorUpsert)
	d, err := dc.service.Update(id, body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(d)
}

func (dc *DoctorController) Delete(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := dc.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
