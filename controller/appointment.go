package controller

import (
	"health_record_ms/dtos/request"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IAppointmentController interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type AppointmentController struct {
	service services.IAppointmentService
}

func NewAppointmentController(service services.IAppointmentService) IAppointmentController {
	return &AppointmentController{service: service}
}

func (ac *AppointmentController) List(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	list, err := ac.service.List(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (ac *AppointmentController) Get(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	a, err := ac.service.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (ac *AppointmentController) Create(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	body := c.Locals("body").(*request.AppointmentUpsert)
	a, err := ac.service.Create(userID, body)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (ac *AppointmentController) Update(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	body := c.Locals("body").(*request.AppointmentUpsert)
	a, err := ac.service.Update(id, body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}

func (ac *AppointmentController) Delete(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := ac.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
