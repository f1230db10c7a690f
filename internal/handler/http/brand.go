package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/brandcatalog/internal/domain"
	"github.com/utafrali/brandcatalog/internal/service"
	apperrors "github.com/utafrali/brandcatalog/pkg/errors"
	"github.com/utafrali/brandcatalog/pkg/httputil"
	"github.com/utafrali/brandcatalog/pkg/validator"
)

// maxBodyBytes caps request bodies on write endpoints.
const maxBodyBytes = 1 << 20

// BrandHandler handles HTTP requests for brand endpoints.
type BrandHandler struct {
	service *service.BrandService
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand HTTP handler.
func NewBrandHandler(svc *service.BrandService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateBrandRequest is the JSON request body for creating a brand. Any id or
// createdAt sent by the client is ignored.
type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"required,notblank,max=500"`
}

// UpdateBrandRequest is the JSON request body for updating a brand. ID must
// match the id in the URL.
type UpdateBrandRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"required,notblank,max=500"`
}

// --- Handlers ---

// ListBrands handles GET /api/brands
// @Summary List all brands
// @Tags brands
// @Produce json
// @Success 200 {array} domain.Brand
// @Failure 500 {object} httputil.ErrorResponse
// @Router /api/brands [get]
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, brands)
}

// GetBrand handles GET /api/brands/{id}
// @Summary Get a brand by id
// @Description A missing brand is reported as 400 with an error body.
// @Tags brands
// @Produce json
// @Param id path int true "Brand id"
// @Success 200 {object} domain.Brand
// @Failure 400 {object} httputil.ErrorResponse
// @Router /api/brands/{id} [get]
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	brand, err := h.service.GetBrand(r.Context(), id)
	if err != nil {
		httputil.WriteErrorMessage(w, r, http.StatusBadRequest, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, brand)
}

// CreateBrand handles POST /api/brands
// @Summary Create a brand
// @Tags brands
// @Accept json
// @Produce json
// @Param request body CreateBrandRequest true "Brand to create"
// @Success 201 {object} domain.Brand
// @Header 201 {string} Location "/api/brands/{id}"
// @Failure 400 {object} httputil.ErrorResponse
// @Router /api/brands [post]
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req CreateBrandRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	brand, err := h.service.CreateBrand(r.Context(), &service.CreateBrandInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.WriteErrorMessage(w, r, http.StatusBadRequest, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/brands/%d", brand.ID))
	httputil.WriteJSON(w, http.StatusCreated, brand)
}

// UpdateBrand handles PUT /api/brands/{id}
// @Summary Update a brand
// @Description Replaces name and description. The body id must equal the path id.
// @Tags brands
// @Accept json
// @Produce json
// @Param id path int true "Brand id"
// @Param request body UpdateBrandRequest true "Updated brand"
// @Success 200 {object} domain.Brand
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 404
// @Router /api/brands/{id} [put]
func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req UpdateBrandRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	if req.ID != id {
		httputil.WriteErrorMessage(w, r, http.StatusBadRequest, apperrors.InvalidArgument(domain.MsgIDMismatch), h.logger)
		return
	}

	brand, err := h.service.UpdateBrand(r.Context(), &service.UpdateBrandInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeMutationError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, brand)
}

// DeleteBrand handles DELETE /api/brands/{id}
// @Summary Delete a brand
// @Tags brands
// @Param id path int true "Brand id"
// @Success 204
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 404
// @Router /api/brands/{id} [delete]
func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteBrand(r.Context(), id); err != nil {
		h.writeMutationError(w, r, err)
		return
	}

	httputil.WriteStatus(w, http.StatusNoContent)
}

// writeMutationError answers a missing brand with a bare 404 and anything
// else with 400.
func (h *BrandHandler) writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		httputil.WriteStatus(w, http.StatusNotFound)
		return
	}
	httputil.WriteErrorMessage(w, r, http.StatusBadRequest, err, h.logger)
}
