package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    string          `json:"categoria"     validate:"required"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required,gt=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo"  validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre       string           `json:"nombre"`
	Descripcion  *string          `json:"descripcion"`
	Categoria    string           `json:"categoria"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	StockMinimo  *int             `json:"stock_minimo"`
}

type AjustarStockRequest struct {
	// Delta is signed: positive restocks, negative corrects shrinkage.
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

type ProductoFilter struct {
	Nombre    string `form:"nombre"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"` // "", "false", "all"
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	Categoria    string          `json:"categoria"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Stock        int             `json:"stock"`
	StockMinimo  int             `json:"stock_minimo"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ConsultaPrecioResponse is the public, cacheable price view.
type ConsultaPrecioResponse struct {
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Stock       int             `json:"stock"`
	Categoria   string          `json:"categoria"`
}

type HistorialPrecioResponse struct {
	CompraAntes   decimal.Decimal `json:"compra_antes"`
	CompraDespues decimal.Decimal `json:"compra_despues"`
	VentaAntes    decimal.Decimal `json:"venta_antes"`
	VentaDespues  decimal.Decimal `json:"venta_despues"`
	Motivo        string          `json:"motivo"`
	CreatedAt     string          `json:"created_at"`
}
