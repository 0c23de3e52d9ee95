package controller

import (
	"encoding/base64"

	"chathub-service/database"
	"chathub-service/model"

	"github.com/gofiber/fiber/v2"
)

// ChatMessageImage serves the stored payload of an image message.
func ChatMessageImage(c *fiber.Ctx) error {
	image := new(model.Image)
	database.Postgres.First(&image, c.AllParams()["id"])
	data, _ := base64.StdEncoding.DecodeString(image.Data)
	c.Set("Content-Type", "image/png")
	return c.Send([]byte(data))
}

// AdminUsers lists registered users, RBAC protected.
func AdminUsers(c *fiber.Ctx) error {
	users := []model.User{}
	if err := database.Postgres.Order("created_at asc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    users,
	})
}

// Health is the liveness probe.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
