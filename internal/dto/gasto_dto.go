package dto

import "github.com/shopspring/decimal"

type RegistrarGastoRequest struct {
	Categoria   string          `json:"categoria"   validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
}

type GastoFilter struct {
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	CreatedAt   string          `json:"created_at"`
}

type GastoListResponse struct {
	Data  []GastoResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
