package controller

import (
	"health_record_ms/dtos/request"
	"health_record_ms/services"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	CreateUpload(c *fiber.Ctx) error
	Download(c *fiber.Ctx) error
	DownloadShared(c *fiber.Ctx) error
	Transcribe(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

type DocumentController struct {
	service services.IDocumentService
}

func NewDocumentController(service services.IDocumentService) IDocumentController {
	return &DocumentController{service: service}
}

func (dc *DocumentController) List(c *fiber.Ctx) error {
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

func (dc *DocumentController) Get(c *fiber.Ctx) error {
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

func (dc *DocumentController) CreateUpload(c *fiber.Ctx) error {
	userID, ok := pathUint(c, "userId")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	body := c.Locals("body").(*request.DocumentCreate)
	up, err := dc.service.CreateUpload(c.Context(), userID, body)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(up)
}

func (dc *DocumentController) Download(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	dl, err := dc.service.Download(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dl)
}

func (dc *DocumentController) DownloadShared(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing share token"})
	}
	dl, err := dc.service.DownloadShared(c.Context(), token)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dl)
}

func (dc *DocumentController) Transcribe(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	t, err := dc.service.Transcribe(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(t)
}

func (dc *DocumentController) Delete(c *fiber.Ctx) error {
	id, ok := pathUint(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := dc.service.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
