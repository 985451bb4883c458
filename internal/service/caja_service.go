package service

import (
	"context"
	"errors"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"
	"github.com/Josechaparro09/Papeleria-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Lifecycle errors. Invalid transitions never mutate anything.
var (
	ErrCajaYaAbierta    = errors.New("ya existe una caja abierta para hoy")
	ErrCajaYaCerrada    = errors.New("la caja de hoy ya fue cerrada")
	ErrCajaNoAbierta    = errors.New("no hay una caja abierta")
	ErrSaldoNegativo    = errors.New("el saldo inicial no puede ser negativo")
	ErrMontoInvalido    = errors.New("el monto debe ser mayor que cero")
	ErrDescripcionVacia = errors.New("la descripción es obligatoria")
)

// CajaService owns the daily register lifecycle (cerrada → abierta → cerrada)
// and the derived summary. One register per calendar day in the business
// timezone; the register never reopens once closed.
type CajaService interface {
	Estado(ctx context.Context) (*dto.EstadoCajaResponse, error)
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.EstadoCajaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CerrarCajaResponse, error)
	RegistrarRecarga(ctx context.Context, req dto.RegistrarRecargaRequest) (*dto.EstadoCajaResponse, error)
	// Resumen recomputes the summary from scratch against the store. It is
	// the authoritative view; callers invoke it after any external sale or
	// expense mutation. No register today (or already closed) yields a zero
	// summary, not an error.
	Resumen(ctx context.Context) (*dto.ResumenCaja, error)
	Historial(ctx context.Context, page, limit int) ([]dto.EstadoCajaResponse, int64, error)
}

type cajaService struct {
	repo       repository.CajaRepository
	ventas     repository.VentaRepository
	gastos     repository.GastoRepository
	dispatcher *worker.Dispatcher // nil in unit tests
	loc        *time.Location
}

func NewCajaService(
	repo repository.CajaRepository,
	ventas repository.VentaRepository,
	gastos repository.GastoRepository,
	dispatcher *worker.Dispatcher,
	loc *time.Location,
) CajaService {
	if loc == nil {
		loc = time.UTC
	}
	return &cajaService{repo: repo, ventas: ventas, gastos: gastos, dispatcher: dispatcher, loc: loc}
}

// hoy returns today's date at midnight in the business timezone.
func (s *cajaService) hoy() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// ── Estado ────────────────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	hoy := s.hoy()

	caja, err := s.repo.FindCajaPorFecha(ctx, hoy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.EstadoCajaResponse{
				Estado:   "cerrada",
				Fecha:    hoy.Format("2006-01-02"),
				Resumen:  dto.ResumenCaja{},
				Recargas: []dto.RecargaResponse{},
			}, nil
		}
		return nil, err
	}

	return s.buildEstado(ctx, caja)
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.EstadoCajaResponse, error) {
	if req.SaldoInicial.IsNegative() {
		return nil, ErrSaldoNegativo
	}

	hoy := s.hoy()

	// One register per day. Check-then-act: fine for the single-operator
	// usage this targets; true concurrent opens are caught by the unique
	// index on fecha.
	existing, err := s.repo.FindCajaPorFecha(ctx, hoy)
	if err == nil {
		if existing.Abierta() {
			return nil, ErrCajaYaAbierta
		}
		return nil, ErrCajaYaCerrada
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	caja := &model.CajaDiaria{
		Fecha:        hoy,
		SaldoInicial: req.SaldoInicial,
	}
	if err := s.repo.CreateCaja(ctx, caja); err != nil {
		return nil, err
	}

	log.Info().Str("caja_id", caja.ID.String()).Str("saldo_inicial", req.SaldoInicial.String()).Msg("caja abierta")
	return s.buildEstado(ctx, caja)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CerrarCajaResponse, error) {
	caja, err := s.cajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	resumen, err := s.computeResumen(ctx, caja)
	if err != nil {
		return nil, err
	}

	saldoCierre := req.SaldoCierre
	ahora := time.Now().In(s.loc)
	caja.SaldoCierre = &saldoCierre
	caja.CerradaAt = &ahora
	if err := s.repo.UpdateCaja(ctx, caja); err != nil {
		// The write failed, so the register stays open; no local state to roll back.
		return nil, err
	}

	desvio := saldoCierre.Sub(resumen.SaldoActual)
	if !desvio.IsZero() {
		log.Warn().
			Str("caja_id", caja.ID.String()).
			Str("saldo_esperado", resumen.SaldoActual.String()).
			Str("saldo_cierre", saldoCierre.String()).
			Str("desvio", desvio.String()).
			Msg("cierre de caja con desvío")
	}

	if s.dispatcher != nil {
		recargas, lerr := s.listRecargas(ctx, caja.ID)
		if lerr != nil {
			recargas = nil
		}
		resumenCierre := *resumen
		resumenCierre.SaldoCierre = &saldoCierre
		if derr := s.dispatcher.EnqueueCierre(ctx, worker.CierreJobPayload{
			CajaID:   caja.ID.String(),
			Fecha:    caja.Fecha.Format("2006-01-02"),
			Desvio:   desvio,
			Resumen:  resumenCierre,
			Recargas: recargas,
		}); derr != nil {
			// Report delivery is best effort; the close itself already committed.
			log.Error().Err(derr).Str("caja_id", caja.ID.String()).Msg("no se pudo encolar el reporte de cierre")
		}
	}

	return &dto.CerrarCajaResponse{
		CajaID:        caja.ID.String(),
		SaldoCierre:   saldoCierre,
		SaldoEsperado: resumen.SaldoActual,
		Desvio:        desvio,
		Estado:        "cerrada",
	}, nil
}

// ── RegistrarRecarga ──────────────────────────────────────────────────────────

func (s *cajaService) RegistrarRecarga(ctx context.Context, req dto.RegistrarRecargaRequest) (*dto.EstadoCajaResponse, error) {
	if req.Descripcion == "" {
		return nil, ErrDescripcionVacia
	}
	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido
	}

	caja, err := s.cajaAbierta(ctx)
	if err != nil {
		return nil, err
	}

	metodo := req.MetodoPago
	if metodo == "" {
		metodo = "efectivo"
	}
	recarga := &model.Recarga{
		CajaDiariaID: caja.ID,
		Descripcion:  req.Descripcion,
		Monto:        req.Monto,
		MetodoPago:   metodo,
	}
	if err := s.repo.CreateRecarga(ctx, recarga); err != nil {
		return nil, err
	}

	// Always recompute from the store instead of patching the cached balance:
	// two concurrent optimistic deltas can lose one of the updates.
	return s.buildEstado(ctx, caja)
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func (s *cajaService) Resumen(ctx context.Context) (*dto.ResumenCaja, error) {
	caja, err := s.repo.FindCajaPorFecha(ctx, s.hoy())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.ResumenCaja{}, nil
		}
		return nil, err
	}
	return s.computeResumen(ctx, caja)
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) Historial(ctx context.Context, page, limit int) ([]dto.EstadoCajaResponse, int64, error) {
	cajas, total, err := s.repo.ListCajas(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.EstadoCajaResponse, 0, len(cajas))
	for i := range cajas {
		estado, err := s.buildEstado(ctx, &cajas[i])
		if err != nil {
			return nil, 0, err
		}
		resp = append(resp, *estado)
	}
	return resp, total, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// cajaAbierta returns today's register only when it is open.
func (s *cajaService) cajaAbierta(ctx context.Context) (*model.CajaDiaria, error) {
	caja, err := s.repo.FindCajaPorFecha(ctx, s.hoy())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCajaNoAbierta
		}
		return nil, err
	}
	if !caja.Abierta() {
		return nil, ErrCajaNoAbierta
	}
	return caja, nil
}

// computeResumen is the aggregator: a pure function of store contents at
// call time. Sales and expenses join by date, recargas by register id.
func (s *cajaService) computeResumen(ctx context.Context, caja *model.CajaDiaria) (*dto.ResumenCaja, error) {
	ventas, err := s.ventas.SumDelDia(ctx, caja.Fecha)
	if err != nil {
		return nil, err
	}
	totalGastos, err := s.gastos.SumDelDia(ctx, caja.Fecha)
	if err != nil {
		return nil, err
	}
	recargas, err := s.repo.SumRecargasPorMetodo(ctx, caja.ID)
	if err != nil {
		return nil, err
	}

	totalRecargas := decimal.Zero
	for _, monto := range recargas {
		totalRecargas = totalRecargas.Add(monto)
	}

	return &dto.ResumenCaja{
		SaldoInicial:  caja.SaldoInicial,
		SaldoCierre:   caja.SaldoCierre,
		TotalVentas:   ventas.Total,
		TotalGastos:   totalGastos,
		TotalRecargas: totalRecargas,
		SaldoActual: caja.SaldoInicial.
			Add(ventas.Total).
			Sub(totalGastos).
			Sub(totalRecargas),
		VentasProductos:       ventas.PorTipo["producto"],
		VentasServicios:       ventas.PorTipo["servicio"],
		VentasSublimacion:     ventas.PorTipo["sublimacion"],
		VentasEfectivo:        ventas.PorMetodo["efectivo"],
		VentasTransferencia:   ventas.PorMetodo["transferencia"],
		RecargasEfectivo:      recargas["efectivo"],
		RecargasTransferencia: recargas["transferencia"],
	}, nil
}

func (s *cajaService) listRecargas(ctx context.Context, cajaID uuid.UUID) ([]dto.RecargaResponse, error) {
	recargas, err := s.repo.ListRecargas(ctx, cajaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecargaResponse, len(recargas))
	for i, rec := range recargas {
		resp[i] = dto.RecargaResponse{
			ID:          rec.ID.String(),
			Descripcion: rec.Descripcion,
			Monto:       rec.Monto,
			MetodoPago:  rec.MetodoPago,
			CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *cajaService) buildEstado(ctx context.Context, caja *model.CajaDiaria) (*dto.EstadoCajaResponse, error) {
	resumen, err := s.computeResumen(ctx, caja)
	if err != nil {
		return nil, err
	}
	recargas, err := s.listRecargas(ctx, caja.ID)
	if err != nil {
		return nil, err
	}

	estado := "cerrada"
	if caja.Abierta() {
		estado = "abierta"
	}
	id := caja.ID.String()
	return &dto.EstadoCajaResponse{
		Estado:   estado,
		CajaID:   &id,
		Fecha:    caja.Fecha.Format("2006-01-02"),
		Resumen:  *resumen,
		Recargas: recargas,
	}, nil
}
