package handler

import (
	"errors"
	"net/http"

	"github.com/Josechaparro09/Papeleria-sub000/internal/apierror"
	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type LitografiaHandler struct{ svc service.LitografiaService }

func NewLitografiaHandler(svc service.LitografiaService) *LitografiaHandler {
	return &LitografiaHandler{svc: svc}
}

// Crear godoc
// @Summary Crea un trabajo de litografia, con abono inicial opcional
// @Tags litografia
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTrabajoRequest true "Datos del trabajo"
// @Success 201 {object} dto.TrabajoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/litografia [post]
func (h *LitografiaHandler) Crear(c *gin.Context) {
	var req dto.CrearTrabajoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *LitografiaHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Trabajo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LitografiaHandler) Listar(c *gin.Context) {
	var filter dto.TrabajoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("parametros invalidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarAbono godoc
// @Summary Registra un abono parcial sobre un trabajo
// @Tags litografia
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del trabajo"
// @Param body body dto.RegistrarAbonoRequest true "Monto del abono"
// @Success 200 {object} dto.TrabajoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/litografia/{id}/abonos [post]
func (h *LitografiaHandler) RegistrarAbono(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarAbono(c.Request.Context(), id, req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrAbonoExcedeSaldo) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LitografiaHandler) MarcarEntregado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.MarcarEntregado(c.Request.Context(), id)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrTrabajoEntregado) {
			status = http.StatusConflict
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
