package handler

import (
	"net/http"

	"optigest/internal/dto"
	"optigest/internal/middleware"
	"optigest/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Crear godoc
// @Summary Registra una compra de insumos y suma stock atómicamente
// @Tags compras
// @Accept json
// @Produce json
// @Param X-Optica-Id header string true "Identificador de óptica"
// @Param compra body dto.CrearCompraRequest true "Compra a registrar"
// @Success 201 {object} dto.CrearCompraResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/compras-insumos [post]
func (h *ComprasHandler) Crear(c *gin.Context) {
	var req dto.CrearCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.GetOpticaID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComprasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), middleware.GetOpticaID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComprasHandler) Listar(c *gin.Context) {
	var filter dto.CompraFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), middleware.GetOpticaID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComprasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), middleware.GetOpticaID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anular godoc
// @Summary Anula una compra revirtiendo el stock sumado
// @Tags compras
// @Accept json
// @Produce json
// @Param X-Optica-Id header string true "Identificador de óptica"
// @Param id path string true "ID de la compra"
// @Param body body dto.AnularCompraRequest false "Motivo de anulación"
// @Success 200 {object} dto.CompraResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError "Ya anulada o stock quedaría negativo"
// @Router /v1/compras-insumos/{id}/anular [patch]
func (h *ComprasHandler) Anular(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AnularCompraRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	resp, err := h.svc.Anular(c.Request.Context(), middleware.GetOpticaID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
