package dto

import "github.com/shopspring/decimal"

type VentaItemRequest struct {
	ProductoID     *string         `json:"producto_id" validate:"omitempty,uuid"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Tipo        string             `json:"tipo"        validate:"required,oneof=producto servicio sublimacion"`
	MetodoPago  string             `json:"metodo_pago" validate:"required,oneof=efectivo transferencia"`
	Descripcion *string            `json:"descripcion"`
	Items       []VentaItemRequest `json:"items" validate:"required,min=1,dive"`
}

type VentaFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD inclusive
	Hasta string `form:"hasta"` // YYYY-MM-DD inclusive
	Tipo  string `form:"tipo"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type VentaItemResponse struct {
	ProductoID     *string         `json:"producto_id,omitempty"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID          string              `json:"id"`
	Fecha       string              `json:"fecha"`
	Tipo        string              `json:"tipo"`
	MetodoPago  string              `json:"metodo_pago"`
	Total       decimal.Decimal     `json:"total"`
	Descripcion *string             `json:"descripcion,omitempty"`
	Items       []VentaItemResponse `json:"items"`
	CreatedAt   string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
