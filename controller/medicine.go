package controller

import (
	"strconv"

	"health_record_ms/dtos/request"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IMedicineController interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type MedicineController struct {
	service services.IMedicineService
}

func NewMedicineController(service services.IMedicineService) IMedicineController {
	return &MedicineController{service: service}
}

func pathUint(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

func (mc *MedicineController) List(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	list, err := mc.service.List(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (mc *MedicineController) Get(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	m, err := mc.service.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(m)
}

func (mc *MedicineController) Create(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	body := c.Locals("body").(*request.MedicineUpsert)
	m, err := mc.service.Create(userID, body)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (mc *MedicineController) Update(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	body := c.Locals("body").(*request.MedicineUpsert)
	m, err := mc.service.Update(id, body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(m)
}

func (mc *MedicineController) Delete(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := mc.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
