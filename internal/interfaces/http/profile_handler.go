package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/usecase"
)

// ProfileHandler perfiles de donante y receptor del usuario autenticado.
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// PutDonor PUT /api/donors/me (crea o actualiza).
func (h *ProfileHandler) PutDonor(c *fiber.Ctx) error {
	var in dto.DonorProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpsertDonor(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDonor GET /api/donors/me
func (h *ProfileHandler) GetDonor(c *fiber.Ctx) error {
	out, err := h.uc.GetDonor(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDonorByID GET /api/donors/:id (personal de hospital).
func (h *ProfileHandler) GetDonorByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDonorByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListDonors GET /api/donors (personal de hospital).
func (h *ProfileHandler) ListDonors(c *fiber.Ctx) error {
	var q dto.DonorListQuery
	if err := c.QueryParser(&q); err != nil {
		return validation(c, "parámetros inválidos")
	}
	out, err := h.uc.ListDonors(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListRecipients GET /api/recipients (personal de hospital).
func (h *ProfileHandler) ListRecipients(c *fiber.Ctx) error {
	var q dto.RecipientListQuery
	if err := c.QueryParser(&q); err != nil {
		return validation(c, "parámetros inválidos")
	}
	out, err := h.uc.ListRecipients(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PutRecipient PUT /api/recipients/me
func (h *ProfileHandler) PutRecipient(c *fiber.Ctx) error {
	var in dto.RecipientProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpsertRecipient(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRecipient GET /api/recipients/me
func (h *ProfileHandler) GetRecipient(c *fiber.Ctx) error {
	out, err := h.uc.GetRecipient(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
