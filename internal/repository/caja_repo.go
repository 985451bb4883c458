package repository

import (
	"context"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaRepository is the data access contract for the daily register and its
// recharge ledger. Recargas have no update or delete — the ledger is append
// only by construction.
type CajaRepository interface {
	CreateCaja(ctx context.Context, c *model.CajaDiaria) error
	// FindCajaPorFecha returns the register for the given calendar day,
	// open or closed. gorm.ErrRecordNotFound when the day has none.
	FindCajaPorFecha(ctx context.Context, fecha time.Time) (*model.CajaDiaria, error)
	FindCajaByID(ctx context.Context, id uuid.UUID) (*model.CajaDiaria, error)
	UpdateCaja(ctx context.Context, c *model.CajaDiaria) error
	ListCajas(ctx context.Context, page, limit int) ([]model.CajaDiaria, int64, error)

	CreateRecarga(ctx context.Context, r *model.Recarga) error
	ListRecargas(ctx context.Context, cajaID uuid.UUID) ([]model.Recarga, error)
	SumRecargasPorMetodo(ctx context.Context, cajaID uuid.UUID) (map[string]decimal.Decimal, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateCaja(ctx context.Context, c *model.CajaDiaria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindCajaPorFecha(ctx context.Context, fecha time.Time) (*model.CajaDiaria, error) {
	var c model.CajaDiaria
	err := r.db.WithContext(ctx).
		Where("fecha = ?", fecha.Format("2006-01-02")).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) FindCajaByID(ctx context.Context, id uuid.UUID) (*model.CajaDiaria, error) {
	var c model.CajaDiaria
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) UpdateCaja(ctx context.Context, c *model.CajaDiaria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) ListCajas(ctx context.Context, page, limit int) ([]model.CajaDiaria, int64, error) {
	var cajas []model.CajaDiaria
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CajaDiaria{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha DESC").Limit(limit).Offset((page - 1) * limit).Find(&cajas).Error
	return cajas, total, err
}

func (r *cajaRepo) CreateRecarga(ctx context.Context, rec *model.Recarga) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *cajaRepo) ListRecargas(ctx context.Context, cajaID uuid.UUID) ([]model.Recarga, error) {
	var recargas []model.Recarga
	err := r.db.WithContext(ctx).
		Where("caja_diaria_id = ?", cajaID).
		Order("created_at DESC").
		Find(&recargas).Error
	return recargas, err
}

func (r *cajaRepo) SumRecargasPorMetodo(ctx context.Context, cajaID uuid.UUID) (map[string]decimal.Decimal, error) {
	var rows []struct {
		MetodoPago string
		Total      decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&model.Recarga{}).
		Select("metodo_pago, COALESCE(SUM(monto), 0) AS total").
		Where("caja_diaria_id = ?", cajaID).
		Group("metodo_pago").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.MetodoPago] = row.Total
	}
	return sums, nil
}
