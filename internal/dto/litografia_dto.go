package dto

import "github.com/shopspring/decimal"

type CrearTrabajoRequest struct {
	Cliente     string          `json:"cliente"     validate:"required,min=2"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Precio      decimal.Decimal `json:"precio"      validate:"required,gt=0"`
	// Abono inicial opcional registrado junto con el trabajo.
	Abono *decimal.Decimal `json:"abono"`
}

type RegistrarAbonoRequest struct {
	Monto decimal.Decimal `json:"monto" validate:"required,gt=0"`
}

type TrabajoFilter struct {
	Estado  string `form:"estado"` // pendiente | entregado
	Cliente string `form:"cliente"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit"`
}

type AbonoResponse struct {
	Monto     decimal.Decimal `json:"monto"`
	CreatedAt string          `json:"created_at"`
}

type TrabajoResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Cliente     string          `json:"cliente"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Abonado     decimal.Decimal `json:"abonado"`
	// Saldo = Precio − Abonado, derived on the way out.
	Saldo  decimal.Decimal `json:"saldo"`
	Estado string          `json:"estado"`
	Abonos []AbonoResponse `json:"abonos,omitempty"`
}

type TrabajoListResponse struct {
	Data  []TrabajoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
