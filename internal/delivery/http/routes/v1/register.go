package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, skills *handler.SkillHandler, users *handler.UserHandler, match *handler.MatchHandler) {
	if r == nil {
		return
	}

	if skills != nil {
		skills.RegisterRoutes(r)
	}
	if match != nil {
		match.RegisterRoutes(r)
	}
	if users != nil {
		users.RegisterRoutes(r)
	}
}
