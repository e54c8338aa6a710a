package handler

import (
	"strings"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillDirectoryUsecase
}

func NewSkillHandler(uc usecase.SkillDirectoryUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.Search)
	grp.Get("/names", h.Names)
	grp.Get("/:id/name", h.Name)
}

func (h *SkillHandler) Search(c fiber.Ctx) error {
	items, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.SkillResponse{ID: it.ID, Name: it.Name})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Names(c fiber.Ctx) error {
	names, err := h.uc.ResolveAll(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, names)
}

// Name never fails for unknown ids; they resolve to the placeholder name.
func (h *SkillHandler) Name(c fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill id is required", nil, nil)
	}
	name := h.uc.ResolveName(c.Context(), id)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillNameResponse{ID: id, Name: name})
}
