package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
}

type CerrarCajaRequest struct {
	SaldoCierre decimal.Decimal `json:"saldo_cierre" validate:"min=0"`
}

type RegistrarRecargaRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	MetodoPago  string          `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ResumenCaja is the derived daily summary. It is recomputed from the store
// after every mutation — never persisted.
type ResumenCaja struct {
	SaldoInicial  decimal.Decimal  `json:"saldo_inicial"`
	SaldoCierre   *decimal.Decimal `json:"saldo_cierre,omitempty"`
	TotalVentas   decimal.Decimal  `json:"total_ventas"`
	TotalGastos   decimal.Decimal  `json:"total_gastos"`
	TotalRecargas decimal.Decimal  `json:"total_recargas"`
	// SaldoActual = SaldoInicial + TotalVentas − TotalGastos − TotalRecargas
	SaldoActual decimal.Decimal `json:"saldo_actual"`

	// Breakdowns by sale type and payment method
	VentasProductos       decimal.Decimal `json:"ventas_productos"`
	VentasServicios       decimal.Decimal `json:"ventas_servicios"`
	VentasSublimacion     decimal.Decimal `json:"ventas_sublimacion"`
	VentasEfectivo        decimal.Decimal `json:"ventas_efectivo"`
	VentasTransferencia   decimal.Decimal `json:"ventas_transferencia"`
	RecargasEfectivo      decimal.Decimal `json:"recargas_efectivo"`
	RecargasTransferencia decimal.Decimal `json:"recargas_transferencia"`
}

type RecargaResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	MetodoPago  string          `json:"metodo_pago"`
	CreatedAt   string          `json:"created_at"`
}

// EstadoCajaResponse is the full view a consuming screen needs: lifecycle
// state, the register (when one exists for today), its summary, and the
// recharge ledger most-recent-first.
type EstadoCajaResponse struct {
	Estado   string            `json:"estado"` // abierta | cerrada
	CajaID   *string           `json:"caja_id,omitempty"`
	Fecha    string            `json:"fecha"`
	Resumen  ResumenCaja       `json:"resumen"`
	Recargas []RecargaResponse `json:"recargas"`
}

type CerrarCajaResponse struct {
	CajaID        string          `json:"caja_id"`
	SaldoCierre   decimal.Decimal `json:"saldo_cierre"`
	SaldoEsperado decimal.Decimal `json:"saldo_esperado"`
	// Desvio = SaldoCierre − SaldoEsperado. Logged, never rejected.
	Desvio decimal.Decimal `json:"desvio"`
	Estado string          `json:"estado"`
}
