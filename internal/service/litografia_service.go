package service

import (
	"context"
	"errors"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAbonoExcedeSaldo = errors.New("el abono excede el saldo pendiente del trabajo")
	ErrTrabajoEntregado = errors.New("el trabajo ya fue entregado")
)

type LitografiaService interface {
	Crear(ctx context.Context, req dto.CrearTrabajoRequest) (*dto.TrabajoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.TrabajoResponse, error)
	Listar(ctx context.Context, filter dto.TrabajoFilter) (*dto.TrabajoListResponse, error)
	RegistrarAbono(ctx context.Context, id uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.TrabajoResponse, error)
	MarcarEntregado(ctx context.Context, id uuid.UUID) (*dto.TrabajoResponse, error)
}

type litografiaService struct {
	repo repository.LitografiaRepository
	loc  *time.Location
}

func NewLitografiaService(repo repository.LitografiaRepository, loc *time.Location) LitografiaService {
	if loc == nil {
		loc = time.UTC
	}
	return &litografiaService{repo: repo, loc: loc}
}

func (s *litografiaService) Crear(ctx context.Context, req dto.CrearTrabajoRequest) (*dto.TrabajoResponse, error) {
	if req.Abono != nil && req.Abono.GreaterThan(req.Precio) {
		return nil, ErrAbonoExcedeSaldo
	}

	now := time.Now().In(s.loc)
	t := model.TrabajoLitografia{
		Fecha:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc),
		Cliente:     req.Cliente,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Estado:      "pendiente",
	}
	if err := s.repo.CreateTrabajo(ctx, &t); err != nil {
		return nil, err
	}

	if req.Abono != nil && req.Abono.IsPositive() {
		abono := model.AbonoLitografia{TrabajoID: t.ID, Monto: *req.Abono}
		if err := s.repo.CreateAbono(ctx, &abono); err != nil {
			return nil, err
		}
		t.Abonado = *req.Abono
		if err := s.repo.UpdateTrabajo(ctx, &t); err != nil {
			return nil, err
		}
		t.Abonos = append(t.Abonos, abono)
	}

	return trabajoToResponse(&t), nil
}

func (s *litografiaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.TrabajoResponse, error) {
	t, err := s.repo.FindTrabajoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return trabajoToResponse(t), nil
}

func (s *litografiaService) Listar(ctx context.Context, filter dto.TrabajoFilter) (*dto.TrabajoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	trabajos, total, err := s.repo.ListTrabajos(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.TrabajoListResponse{
		Data:  make([]dto.TrabajoResponse, len(trabajos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range trabajos {
		resp.Data[i] = *trabajoToResponse(&trabajos[i])
	}
	return resp, nil
}

func (s *litografiaService) RegistrarAbono(ctx context.Context, id uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.TrabajoResponse, error) {
	t, err := s.repo.FindTrabajoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Abonado.Add(req.Monto).GreaterThan(t.Precio) {
		return nil, ErrAbonoExcedeSaldo
	}

	abono := model.AbonoLitografia{TrabajoID: t.ID, Monto: req.Monto}
	if err := s.repo.CreateAbono(ctx, &abono); err != nil {
		return nil, err
	}
	t.Abonado = t.Abonado.Add(req.Monto)
	if err := s.repo.UpdateTrabajo(ctx, t); err != nil {
		return nil, err
	}
	t.Abonos = append(t.Abonos, abono)

	return trabajoToResponse(t), nil
}

func (s *litografiaService) MarcarEntregado(ctx context.Context, id uuid.UUID) (*dto.TrabajoResponse, error) {
	t, err := s.repo.FindTrabajoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Estado == "entregado" {
		return nil, ErrTrabajoEntregado
	}

	t.Estado = "entregado"
	if err := s.repo.UpdateTrabajo(ctx, t); err != nil {
		return nil, err
	}
	return trabajoToResponse(t), nil
}

func trabajoToResponse(t *model.TrabajoLitografia) *dto.TrabajoResponse {
	abonos := make([]dto.AbonoResponse, len(t.Abonos))
	for i, a := range t.Abonos {
		abonos[i] = dto.AbonoResponse{
			Monto:     a.Monto,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
	}
	return &dto.TrabajoResponse{
		ID:          t.ID.String(),
		Fecha:       t.Fecha.Format("2006-01-02"),
		Cliente:     t.Cliente,
		Descripcion: t.Descripcion,
		Precio:      t.Precio,
		Abonado:     t.Abonado,
		Saldo:       t.Precio.Sub(t.Abonado),
		Estado:      t.Estado,
		Abonos:      abonos,
	}
}
