package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	register usecase.UserRegistrationUsecase
}

func NewUserHandler(register usecase.UserRegistrationUsecase) *UserHandler {
	return &UserHandler{register: register}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/users", h.Register)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	u, err := h.register.Register(c.Context(), usecase.RegisterUserInput{Name: req.Name, Skills: req.Skills})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, usecase.MsgAddUserFailed, nil, err)
	}

	return response.Success(c, fiber.StatusOK, usecase.MsgUserAdded, dto.RegisterUserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Skills:      u.Skills,
		SkillSetKey: u.SkillSetKey,
	})
}
