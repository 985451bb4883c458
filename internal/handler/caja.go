package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Josechaparro09/Papeleria-sub000/internal/apierror"
	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// cajaStatus maps lifecycle errors to HTTP codes. Conflicting transitions
// are 409, bad inputs are 400, anything else is a 500.
func cajaStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrCajaYaAbierta),
		errors.Is(err, service.ErrCajaYaCerrada),
		errors.Is(err, service.ErrCajaNoAbierta):
		return http.StatusConflict
	case errors.Is(err, service.ErrSaldoNegativo),
		errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrDescripcionVacia):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Estado godoc
// @Summary Estado de la caja de hoy
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EstadoCajaResponse
// @Router /v1/caja [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre la caja del dia con un saldo inicial
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCajaRequest true "Datos de apertura"
// @Success 201 {object} dto.EstadoCajaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		c.JSON(cajaStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la caja del dia declarando el saldo contado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Saldo declarado al cierre"
// @Success 200 {object} dto.CerrarCajaResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), req)
	if err != nil {
		c.JSON(cajaStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarRecarga godoc
// @Summary Registra una recarga contra la caja abierta
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarRecargaRequest true "Datos de la recarga"
// @Success 201 {object} dto.EstadoCajaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/recargas [post]
func (h *CajaHandler) RegistrarRecarga(c *gin.Context) {
	var req dto.RegistrarRecargaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarRecarga(c.Request.Context(), req)
	if err != nil {
		c.JSON(cajaStatus(err), apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Recargas returns today's recargas newest first.
func (h *CajaHandler) Recargas(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp.Recargas})
}

// Resumen godoc
// @Summary Resumen recalculado de la caja de hoy
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumenCaja
// @Router /v1/caja/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of past registers, newest first.
func (h *CajaHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	data, total, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total, "page": page, "limit": limit})
}
