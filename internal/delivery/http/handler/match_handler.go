package handler

import (
	"errors"
	"strings"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/matching"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/users/match", h.Match)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchUsersRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	in := usecase.MatchInput{SkillIDs: req.Skills}
	if strings.TrimSpace(req.Policy) != "" {
		p, err := matching.ParsePolicy(req.Policy)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Unknown matching policy", nil, err)
		}
		in.Policy = p
	}

	res, err := h.uc.Match(c.Context(), in)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.MatchUsersResponse{
		Policy:   string(res.Policy),
		Required: res.Required,
		Queries:  res.Queries,
		Users:    make([]dto.MatchedUserResponse, 0, len(res.Users)),
	}
	for _, u := range res.Users {
		mu := dto.MatchedUserResponse{ID: u.ID, Name: u.Name, Skills: make([]dto.SkillResponse, 0, len(u.Skills))}
		for i, id := range u.Skills {
			mu.Skills = append(mu.Skills, dto.SkillResponse{ID: id, Name: u.SkillNames[i]})
		}
		out.Users = append(out.Users, mu)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoSkillsSelected):
		return middleware.NewAppError(fiber.StatusBadRequest, usecase.MsgNoSkillsSelected, nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrNoUsersFound):
		return middleware.NewAppError(fiber.StatusNotFound, usecase.MsgNoUsersFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, usecase.MsgQueryFailed, nil, err)
	}
}
