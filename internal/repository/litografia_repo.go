package repository

import (
	"context"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LitografiaRepository interface {
	CreateTrabajo(ctx context.Context, t *model.TrabajoLitografia) error
	FindTrabajoByID(ctx context.Context, id uuid.UUID) (*model.TrabajoLitografia, error)
	ListTrabajos(ctx context.Context, filter dto.TrabajoFilter) ([]model.TrabajoLitografia, int64, error)
	UpdateTrabajo(ctx context.Context, t *model.TrabajoLitografia) error
	CreateAbono(ctx context.Context, a *model.AbonoLitografia) error
}

type litografiaRepo struct{ db *gorm.DB }

func NewLitografiaRepository(db *gorm.DB) LitografiaRepository { return &litografiaRepo{db: db} }

func (r *litografiaRepo) CreateTrabajo(ctx context.Context, t *model.TrabajoLitografia) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *litografiaRepo) FindTrabajoByID(ctx context.Context, id uuid.UUID) (*model.TrabajoLitografia, error) {
	var t model.TrabajoLitografia
	err := r.db.WithContext(ctx).Preload("Abonos").First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *litografiaRepo) ListTrabajos(ctx context.Context, filter dto.TrabajoFilter) ([]model.TrabajoLitografia, int64, error) {
	var trabajos []model.TrabajoLitografia
	var total int64

	q := r.db.WithContext(ctx).Model(&model.TrabajoLitografia{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Cliente != "" {
		q = q.Where("cliente ILIKE ?", "%"+filter.Cliente+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&trabajos).Error
	return trabajos, total, err
}

func (r *litografiaRepo) UpdateTrabajo(ctx context.Context, t *model.TrabajoLitografia) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *litografiaRepo) CreateAbono(ctx context.Context, a *model.AbonoLitografia) error {
	return r.db.WithContext(ctx).Create(a).Error
}
