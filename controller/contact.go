package controller

import (
	"health_record_ms/dtos/request"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IContactController interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type ContactController struct {
	service services.IContactService
}

func NewContactController(service services.IContactService) IContactController {
	return &ContactController{service: service}
}

func (cc *ContactController) List(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	list, err := cc.service.List(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (cc *ContactController) Get(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	ct, err := cc.service.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ct)
}

func (cc *ContactController) Create(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	body := c.Locals("body").(*request.ContactUpsert)
	ct, err := cc.service.Create(userID, body)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ct)
}

func (cc *ContactController) Update(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	body := c.Locals("body").(*request.ContactUpsert)
	ct, err := cc.service.Update(id, body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(ct)
}

func (cc *ContactController) Delete(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := cc.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
