package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/apierror"
	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

// ConsultaPreciosHandler serves the public price check endpoint used by
// the in-store tablet. No authentication, no side effects.
type ConsultaPreciosHandler struct {
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, rdb: rdb}
}

// GetPrecio godoc
// @Summary Consulta de precio por ID de producto (sin autenticacion)
// @Tags precio
// @Produce json
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{id} [get]
func (h *ConsultaPreciosHandler) GetPrecio(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cacheKey := service.PrecioCachePrefix + id.String()

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	producto, err := h.repo.FindByID(ctx, id)
	if err != nil || !producto.Activo {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Nombre:      producto.Nombre,
		PrecioVenta: producto.PrecioVenta,
		Stock:       producto.Stock,
		Categoria:   producto.Categoria,
	}

	// Populate cache best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
