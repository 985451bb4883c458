package handler

import (
	"net/http"

	"github.com/Josechaparro09/Papeleria-sub000/internal/apierror"
	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/middleware"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GastoHandler struct{ svc service.GastoService }

func NewGastoHandler(svc service.GastoService) *GastoHandler { return &GastoHandler{svc: svc} }

// Registrar godoc
// @Summary Registra un gasto del dia
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarGastoRequest true "Datos del gasto"
// @Success 201 {object} dto.GastoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/gastos [post]
func (h *GastoHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarGastoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GastoHandler) Listar(c *gin.Context) {
	var filter dto.GastoFilter
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

// Eliminar removes a same-day expense recorded by mistake. Admin only.
func (h *GastoHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
