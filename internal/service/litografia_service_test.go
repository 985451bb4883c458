package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory LitografiaRepository ───────────────────────────────────────────

type fakeLitografiaRepo struct {
	trabajos map[uuid.UUID]*model.TrabajoLitografia
	abonos   []model.AbonoLitografia
}

func newFakeLitografiaRepo() *fakeLitografiaRepo {
	return &fakeLitografiaRepo{trabajos: make(map[uuid.UUID]*model.TrabajoLitografia)}
}

func (r *fakeLitografiaRepo) CreateTrabajo(_ context.Context, t *model.TrabajoLitografia) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	r.trabajos[t.ID] = t
	return nil
}

func (r *fakeLitografiaRepo) FindTrabajoByID(_ context.Context, id uuid.UUID) (*model.TrabajoLitografia, error) {
	t, ok := r.trabajos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *t
	copia.Abonos = nil
	for _, a := range r.abonos {
		if a.TrabajoID == id {
			copia.Abonos = append(copia.Abonos, a)
		}
	}
	return &copia, nil
}

func (r *fakeLitografiaRepo) ListTrabajos(_ context.Context, filter dto.TrabajoFilter) ([]model.TrabajoLitografia, int64, error) {
	var all []model.TrabajoLitografia
	for _, t := range r.trabajos {
		if filter.Estado != "" && t.Estado != filter.Estado {
			continue
		}
		all = append(all, *t)
	}
	return all, int64(len(all)), nil
}

func (r *fakeLitografiaRepo) UpdateTrabajo(_ context.Context, t *model.TrabajoLitografia) error {
	r.trabajos[t.ID] = t
	return nil
}

func (r *fakeLitografiaRepo) CreateAbono(_ context.Context, a *model.AbonoLitografia) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.abonos = append(r.abonos, *a)
	return nil
}

var _ repository.LitografiaRepository = (*fakeLitografiaRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func newLitografiaFixture() (service.LitografiaService, *fakeLitografiaRepo) {
	repo := newFakeLitografiaRepo()
	return service.NewLitografiaService(repo, time.UTC), repo
}

func TestCrearTrabajo(t *testing.T) {
	svc, _ := newLitografiaFixture()

	resp, err := svc.Crear(context.Background(), dto.CrearTrabajoRequest{
		Cliente:     "Colegio San José",
		Descripcion: "500 volantes a color",
		Precio:      d(120000),
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Estado)
	assert.True(t, resp.Abonado.IsZero())
	assert.Equal(t, d(120000).String(), resp.Saldo.String())
}

func TestCrearTrabajoConAbonoInicial(t *testing.T) {
	svc, repo := newLitografiaFixture()

	abono := decimal.NewFromInt(50000)
	resp, err := svc.Crear(context.Background(), dto.CrearTrabajoRequest{
		Cliente:     "Ferretería El Martillo",
		Descripcion: "1000 tarjetas de presentación",
		Precio:      d(90000),
		Abono:       &abono,
	})
	require.NoError(t, err)
	assert.Equal(t, d(50000).String(), resp.Abonado.String())
	assert.Equal(t, d(40000).String(), resp.Saldo.String())
	require.Len(t, repo.abonos, 1)
}

func TestAbonoInicialExcedePrecio(t *testing.T) {
	svc, repo := newLitografiaFixture()

	abono := decimal.NewFromInt(100000)
	_, err := svc.Crear(context.Background(), dto.CrearTrabajoRequest{
		Cliente:     "Cliente",
		Descripcion: "Pendón",
		Precio:      d(80000),
		Abono:       &abono,
	})
	assert.ErrorIs(t, err, service.ErrAbonoExcedeSaldo)
	assert.Empty(t, repo.trabajos)
}

func TestRegistrarAbonosAcumulados(t *testing.T) {
	svc, _ := newLitografiaFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearTrabajoRequest{
		Cliente:     "Panadería La Espiga",
		Descripcion: "Menús plastificados",
		Precio:      d(60000),
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.RegistrarAbono(ctx, id, dto.RegistrarAbonoRequest{Monto: d(20000)})
	require.NoError(t, err)
	actualizado, err := svc.RegistrarAbono(ctx, id, dto.RegistrarAbonoRequest{Monto: d(40000)})
	require.NoError(t, err)

	assert.Equal(t, d(60000).String(), actualizado.Abonado.String())
	assert.True(t, actualizado.Saldo.IsZero())
	assert.Len(t, actualizado.Abonos, 2)

	// Fully paid: the next abono has no remaining balance to apply to.
	_, err = svc.RegistrarAbono(ctx, id, dto.RegistrarAbonoRequest{Monto: d(1000)})
	assert.ErrorIs(t, err, service.ErrAbonoExcedeSaldo)
}

func TestMarcarEntregado(t *testing.T) {
	svc, _ := newLitografiaFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearTrabajoRequest{
		Cliente:     "Cliente",
		Descripcion: "Sellos",
		Precio:      d(25000),
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	entregado, err := svc.MarcarEntregado(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "entregado", entregado.Estado)

	_, err = svc.MarcarEntregado(ctx, id)
	assert.ErrorIs(t, err, service.ErrTrabajoEntregado)
}
