package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarGasto(t *testing.T) {
	repo := &fakeGastoRepo{}
	svc := service.NewGastoService(repo, time.UTC)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarGastoRequest{
		Categoria:   "servicios",
		Descripcion: "Recibo de energía",
		Monto:       d(85000),
	})
	require.NoError(t, err)
	assert.Equal(t, hoyUTC().Format("2006-01-02"), resp.Fecha)
	assert.Equal(t, d(85000).String(), resp.Monto.String())
	require.Len(t, repo.gastos, 1)
}

func TestEliminarGasto(t *testing.T) {
	repo := &fakeGastoRepo{}
	svc := service.NewGastoService(repo, time.UTC)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, uuid.New(), dto.RegistrarGastoRequest{
		Categoria:   "insumos",
		Descripcion: "Tinta",
		Monto:       d(30000),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(ctx, uuid.MustParse(resp.ID)))
	assert.Empty(t, repo.gastos)

	assert.Error(t, svc.Eliminar(ctx, uuid.New()))
}
