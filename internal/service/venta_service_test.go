package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVentaFixture() (service.VentaService, *fakeVentaRepo, *fakeProductoRepo, *fakeStockRepo) {
	ventas := &fakeVentaRepo{}
	productos := newFakeProductoRepo()
	stock := &fakeStockRepo{}
	svc := service.NewVentaService(ventas, productos, stock, time.UTC)
	return svc, ventas, productos, stock
}

func seedProducto(t *testing.T, productos *fakeProductoRepo, nombre string, precio int64, stockInicial int) uuid.UUID {
	t.Helper()
	p := &model.Producto{
		Nombre:      nombre,
		Categoria:   "papeleria",
		PrecioVenta: d(precio),
		Stock:       stockInicial,
		Activo:      true,
	}
	require.NoError(t, productos.Create(context.Background(), p))
	return p.ID
}

func TestRegistrarVentaProducto(t *testing.T) {
	svc, ventas, productos, stock := newVentaFixture()
	ctx := context.Background()

	id := seedProducto(t, productos, "Cuaderno", 8500, 10)
	idStr := id.String()

	resp, err := svc.Registrar(ctx, uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "producto",
		MetodoPago: "efectivo",
		Items: []dto.VentaItemRequest{
			{ProductoID: &idStr, Cantidad: 3},
		},
	})
	require.NoError(t, err)

	// Total comes from the catalog price, quantity applied.
	assert.Equal(t, d(25500).String(), resp.Total.String())
	require.Len(t, ventas.ventas, 1)

	// Stock decremented and audited.
	assert.Equal(t, 7, productos.productos[id].Stock)
	require.Len(t, stock.movimientos, 1)
	assert.Equal(t, "venta", stock.movimientos[0].Tipo)
	assert.Equal(t, -3, stock.movimientos[0].Cantidad)
	assert.Equal(t, 10, stock.movimientos[0].StockAnterior)
	assert.Equal(t, 7, stock.movimientos[0].StockNuevo)
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	svc, ventas, productos, stock := newVentaFixture()
	ctx := context.Background()

	id := seedProducto(t, productos, "Agenda", 15000, 2)
	idStr := id.String()

	_, err := svc.Registrar(ctx, uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "producto",
		MetodoPago: "efectivo",
		Items: []dto.VentaItemRequest{
			{ProductoID: &idStr, Cantidad: 5},
		},
	})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)

	// Nothing persisted on rejection.
	assert.Empty(t, ventas.ventas)
	assert.Empty(t, stock.movimientos)
	assert.Equal(t, 2, productos.productos[id].Stock)
}

func TestRegistrarVentaProductoInactivo(t *testing.T) {
	svc, _, productos, _ := newVentaFixture()
	ctx := context.Background()

	id := seedProducto(t, productos, "Descontinuado", 1000, 5)
	productos.productos[id].Activo = false
	idStr := id.String()

	_, err := svc.Registrar(ctx, uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "producto",
		MetodoPago: "efectivo",
		Items: []dto.VentaItemRequest{
			{ProductoID: &idStr, Cantidad: 1},
		},
	})
	assert.ErrorContains(t, err, "inactivo")
}

func TestRegistrarVentaServicio(t *testing.T) {
	svc, ventas, _, stock := newVentaFixture()
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "servicio",
		MetodoPago: "transferencia",
		Items: []dto.VentaItemRequest{
			{Descripcion: "Impresión a color", Cantidad: 20, PrecioUnitario: d(500)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, d(10000).String(), resp.Total.String())
	require.Len(t, ventas.ventas, 1)
	// Service lines never touch inventory.
	assert.Empty(t, stock.movimientos)
	assert.Nil(t, ventas.ventas[0].Items[0].ProductoID)
}

func TestRegistrarVentaServicioSinDescripcion(t *testing.T) {
	svc, ventas, _, _ := newVentaFixture()

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "servicio",
		MetodoPago: "efectivo",
		Items: []dto.VentaItemRequest{
			{Cantidad: 1, PrecioUnitario: d(2000)},
		},
	})
	assert.ErrorContains(t, err, "descripción")
	assert.Empty(t, ventas.ventas)
}

func TestRegistrarVentaProductoSinID(t *testing.T) {
	svc, _, _, _ := newVentaFixture()

	_, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "producto",
		MetodoPago: "efectivo",
		Items: []dto.VentaItemRequest{
			{Descripcion: "sin id", Cantidad: 1},
		},
	})
	assert.ErrorContains(t, err, "producto_id")
}

func TestVentaMixtaVariosItems(t *testing.T) {
	svc, ventas, productos, _ := newVentaFixture()
	ctx := context.Background()

	id := seedProducto(t, productos, "Mug", 12000, 6)
	idStr := id.String()

	resp, err := svc.Registrar(ctx, uuid.New(), dto.RegistrarVentaRequest{
		Tipo:       "producto",
		MetodoPago: "efectivo",
		Items: []dto.VentaItemRequest{
			{ProductoID: &idStr, Cantidad: 2},
			{ProductoID: &idStr, Cantidad: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, d(36000).String(), resp.Total.String())
	assert.Equal(t, 3, 6-productos.productos[id].Stock)
	require.Len(t, ventas.ventas, 1)
	assert.Len(t, ventas.ventas[0].Items, 2)
}
