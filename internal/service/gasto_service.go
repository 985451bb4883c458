package service

import (
	"context"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"

	"github.com/google/uuid"
)

type GastoService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarGastoRequest) (*dto.GastoResponse, error)
	Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type gastoService struct {
	repo repository.GastoRepository
	loc  *time.Location
}

func NewGastoService(repo repository.GastoRepository, loc *time.Location) GastoService {
	if loc == nil {
		loc = time.UTC
	}
	return &gastoService{repo: repo, loc: loc}
}

func (s *gastoService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarGastoRequest) (*dto.GastoResponse, error) {
	now := time.Now().In(s.loc)
	gasto := model.Gasto{
		Fecha:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc),
		Categoria:   req.Categoria,
		Descripcion: req.Descripcion,
		Monto:       req.Monto,
		UsuarioID:   usuarioID,
	}
	if err := s.repo.Create(ctx, &gasto); err != nil {
		return nil, err
	}
	return gastoToResponse(&gasto), nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) (*dto.GastoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	gastos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.GastoListResponse{
		Data:  make([]dto.GastoResponse, len(gastos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range gastos {
		resp.Data[i] = *gastoToResponse(&gastos[i])
	}
	return resp, nil
}

func (s *gastoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func gastoToResponse(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		Fecha:       g.Fecha.Format("2006-01-02"),
		Categoria:   g.Categoria,
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}
