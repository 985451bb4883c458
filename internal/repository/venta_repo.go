package repository

import (
	"context"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas aggregates one day of sales for the caja aggregator.
// PorTipo keys: producto | servicio | sublimacion.
// PorMetodo keys: efectivo | transferencia.
type ResumenVentas struct {
	Total     decimal.Decimal
	PorTipo   map[string]decimal.Decimal
	PorMetodo map[string]decimal.Decimal
}

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// SumDelDia aggregates sales whose fecha falls within [dia, dia+1).
	SumDelDia(ctx context.Context, dia time.Time) (*ResumenVentas, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items").First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Desde != "" {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha <= ?", filter.Hasta)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) SumDelDia(ctx context.Context, dia time.Time) (*ResumenVentas, error) {
	var rows []struct {
		Tipo       string
		MetodoPago string
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.Venta{}).
		Select("tipo, metodo_pago, COALESCE(SUM(total), 0) AS total").
		Where("fecha >= ? AND fecha < ?", dia.Format("2006-01-02"), dia.AddDate(0, 0, 1).Format("2006-01-02")).
		Group("tipo, metodo_pago").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	resumen := &ResumenVentas{
		Total:     decimal.Zero,
		PorTipo:   make(map[string]decimal.Decimal),
		PorMetodo: make(map[string]decimal.Decimal),
	}
	for _, row := range rows {
		resumen.Total = resumen.Total.Add(row.Total)
		resumen.PorTipo[row.Tipo] = resumen.PorTipo[row.Tipo].Add(row.Total)
		resumen.PorMetodo[row.MetodoPago] = resumen.PorMetodo[row.MetodoPago].Add(row.Total)
	}
	return resumen, nil
}
