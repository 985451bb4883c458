package service_test

import (
	"context"
	"testing"

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

// ── In-memory ProductoRepository ─────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakeProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	all := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		all = append(all, *p)
	}
	return all, int64(len(all)), nil
}

func (r *fakeProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock <= p.StockMinimo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *fakeProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *fakeProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	return r.UpdateStockTx(nil, id, delta)
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

// ── In-memory MovimientoStockRepository ──────────────────────────────────────

type fakeStockRepo struct {
	movimientos []model.MovimientoStock
}

func (r *fakeStockRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeStockRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	return r.Create(context.Background(), m)
}

func (r *fakeStockRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _ int) ([]model.MovimientoStock, error) {
	var result []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			result = append(result, m)
		}
	}
	return result, nil
}

var _ repository.MovimientoStockRepository = (*fakeStockRepo)(nil)

// ── In-memory HistorialPrecioRepository ──────────────────────────────────────

type fakeHistorialRepo struct {
	registros []model.HistorialPrecio
}

func (r *fakeHistorialRepo) Create(_ context.Context, h *model.HistorialPrecio) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.registros = append(r.registros, *h)
	return nil
}

func (r *fakeHistorialRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.HistorialPrecio, error) {
	var result []model.HistorialPrecio
	for _, h := range r.registros {
		if h.ProductoID == productoID {
			result = append(result, h)
		}
	}
	return result, nil
}

var _ repository.HistorialPrecioRepository = (*fakeHistorialRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func newProductoFixture() (service.ProductoService, *fakeProductoRepo, *fakeHistorialRepo, *fakeStockRepo) {
	productos := newFakeProductoRepo()
	historial := &fakeHistorialRepo{}
	stock := &fakeStockRepo{}
	svc := service.NewProductoService(productos, historial, stock, nil)
	return svc, productos, historial, stock
}

func TestCrearProducto(t *testing.T) {
	svc, _, _, _ := newProductoFixture()

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:       "Cuaderno argollado",
		Categoria:    "papeleria",
		PrecioCompra: d(5000),
		PrecioVenta:  d(8500),
		Stock:        24,
		StockMinimo:  5,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)
	assert.Equal(t, 24, resp.Stock)
	assert.Equal(t, d(8500).String(), resp.PrecioVenta.String())
}

func TestActualizarPrecioRegistraHistorial(t *testing.T) {
	svc, _, historial, _ := newProductoFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Lapicero", Categoria: "papeleria",
		PrecioCompra: d(800), PrecioVenta: d(1500), Stock: 100,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	nuevoPrecio := d(2000)
	_, err = svc.Actualizar(ctx, id, dto.ActualizarProductoRequest{PrecioVenta: &nuevoPrecio})
	require.NoError(t, err)

	require.Len(t, historial.registros, 1)
	assert.Equal(t, d(1500).String(), historial.registros[0].VentaAntes.String())
	assert.Equal(t, d(2000).String(), historial.registros[0].VentaDespues.String())
}

func TestActualizarSinCambioDePrecioNoRegistra(t *testing.T) {
	svc, _, historial, _ := newProductoFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Borrador", Categoria: "papeleria",
		PrecioCompra: d(300), PrecioVenta: d(700), Stock: 50,
	})
	require.NoError(t, err)

	_, err = svc.Actualizar(ctx, uuid.MustParse(resp.ID), dto.ActualizarProductoRequest{
		Nombre: "Borrador de nata",
	})
	require.NoError(t, err)
	assert.Empty(t, historial.registros)
}

func TestAjustarStock(t *testing.T) {
	svc, productos, _, stock := newProductoFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Resma carta", Categoria: "papeleria",
		PrecioCompra: d(9000), PrecioVenta: d(14000), Stock: 10,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	actualizado, err := svc.AjustarStock(ctx, id, dto.AjustarStockRequest{
		Delta: 15, Motivo: "compra a proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, 25, actualizado.Stock)
	assert.Equal(t, 25, productos.productos[id].Stock)

	require.Len(t, stock.movimientos, 1)
	assert.Equal(t, "ajuste_manual", stock.movimientos[0].Tipo)
	assert.Equal(t, 10, stock.movimientos[0].StockAnterior)
	assert.Equal(t, 25, stock.movimientos[0].StockNuevo)
}

func TestAjustarStockNegativoInsuficiente(t *testing.T) {
	svc, _, _, stock := newProductoFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Cartulina", Categoria: "papeleria",
		PrecioCompra: d(500), PrecioVenta: d(1000), Stock: 3,
	})
	require.NoError(t, err)

	_, err = svc.AjustarStock(ctx, uuid.MustParse(resp.ID), dto.AjustarStockRequest{
		Delta: -5, Motivo: "merma",
	})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Empty(t, stock.movimientos)
}

func TestAlertasStock(t *testing.T) {
	svc, _, _, _ := newProductoFixture()
	ctx := context.Background()

	_, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Marcador", Categoria: "papeleria",
		PrecioCompra: d(1000), PrecioVenta: d(2500), Stock: 2, StockMinimo: 5,
	})
	require.NoError(t, err)
	_, err = svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Tijeras", Categoria: "papeleria",
		PrecioCompra: d(2000), PrecioVenta: d(4500), Stock: 30, StockMinimo: 5,
	})
	require.NoError(t, err)

	alertas, err := svc.AlertasStock(ctx)
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, "Marcador", alertas[0].Nombre)
}

func TestHistorialPreciosPorProducto(t *testing.T) {
	svc, _, _, _ := newProductoFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Pegante", Categoria: "papeleria",
		PrecioCompra: d(1200), PrecioVenta: d(2200), Stock: 12,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	primera := decimal.NewFromInt(2500)
	_, err = svc.Actualizar(ctx, id, dto.ActualizarProductoRequest{PrecioVenta: &primera})
	require.NoError(t, err)
	segunda := decimal.NewFromInt(2800)
	_, err = svc.Actualizar(ctx, id, dto.ActualizarProductoRequest{PrecioVenta: &segunda})
	require.NoError(t, err)

	hist, err := svc.HistorialPrecios(ctx, id)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "2500", hist[0].VentaDespues.String())
	assert.Equal(t, "2800", hist[1].VentaDespues.String())
}

func TestDesactivarProducto(t *testing.T) {
	svc, productos, _, _ := newProductoFixture()
	ctx := context.Background()

	resp, err := svc.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Silicona", Categoria: "manualidades",
		PrecioCompra: d(1500), PrecioVenta: d(3000), Stock: 8,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, svc.Desactivar(ctx, id))
	assert.False(t, productos.productos[id].Activo)

	require.NoError(t, svc.Reactivar(ctx, id))
	assert.True(t, productos.productos[id].Activo)
}
