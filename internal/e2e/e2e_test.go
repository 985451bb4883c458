//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Josechaparro09/Papeleria-sub000/internal/config"
	"github.com/Josechaparro09/Papeleria-sub000/internal/infra"
	"github.com/Josechaparro09/Papeleria-sub000/internal/router"
	"github.com/Josechaparro09/Papeleria-sub000/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("papeleria_test"),
		tcPostgres.WithUsername("papeleria"),
		tcPostgres.WithPassword("papeleria"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		Timezone:           "UTC",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin
	hash, err := bcrypt.GenerateFromPassword([]byte("papeleria2026"), 12)
	require.NoError(t, err)
	err = db.Exec(`INSERT INTO usuarios (id, username, nombre, password_hash, rol, activo, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin', 'Admin E2E', ?, 'administrador', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error
	require.NoError(t, err)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "papeleria2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full day cycle: open → sale → recarga → close with zero desvío.
func TestE2E_CicloDiaCompleto(t *testing.T) {
	env := setupTestEnv(t)

	abrirResp := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{"saldo_inicial": "50000"}), env.token)
	require.Equal(t, http.StatusCreated, abrirResp.StatusCode)
	var estado struct {
		Estado  string `json:"estado"`
		Resumen struct {
			SaldoActual string `json:"saldo_actual"`
		} `json:"resumen"`
	}
	decodeJSON(t, abrirResp, &estado)
	assert.Equal(t, "abierta", estado.Estado)

	// Service sale, no catalog product involved
	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"tipo":        "servicio",
			"metodo_pago": "efectivo",
			"items": []map[string]any{
				{"descripcion": "Fotocopias", "cantidad": 100, "precio_unitario": "200"},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)

	recargaResp := do(t, env.server, "POST", "/v1/caja/recargas",
		jsonBody(t, map[string]any{
			"descripcion": "Recarga Claro 10000",
			"monto":       "10000",
			"metodo_pago": "efectivo",
		}), env.token)
	require.Equal(t, http.StatusCreated, recargaResp.StatusCode)
	decodeJSON(t, recargaResp, &estado)
	// 50000 + 20000 − 10000
	assert.Equal(t, "60000", estado.Resumen.SaldoActual)

	cerrarResp := do(t, env.server, "POST", "/v1/caja/cerrar",
		jsonBody(t, map[string]any{"saldo_cierre": "60000"}), env.token)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	var cierre struct {
		Estado string `json:"estado"`
		Desvio string `json:"desvio"`
	}
	decodeJSON(t, cerrarResp, &cierre)
	assert.Equal(t, "cerrada", cierre.Estado)
	assert.Equal(t, "0", cierre.Desvio)

	// No second open on the same day
	reabrir := do(t, env.server, "POST", "/v1/caja/abrir",
		jsonBody(t, map[string]any{"saldo_inicial": "1000"}), env.token)
	assert.Equal(t, http.StatusConflict, reabrir.StatusCode)
}

// Product sale decrements stock and serves the public price endpoint.
func TestE2E_VentaProductoYConsultaPrecio(t *testing.T) {
	env := setupTestEnv(t)

	prodResp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":        "Cuaderno argollado",
			"categoria":     "papeleria",
			"precio_compra": "5000",
			"precio_venta":  "8500",
			"stock":         10,
			"stock_minimo":  2,
		}), env.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, prodResp, &prod)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"tipo":        "producto",
			"metodo_pago": "efectivo",
			"items": []map[string]any{
				{"producto_id": prod.ID, "cantidad": 3},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		Total string `json:"total"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "25500", venta.Total)

	// Public price check, no token
	precioResp := do(t, env.server, "GET", "/v1/precio/"+prod.ID, nil, "")
	require.Equal(t, http.StatusOK, precioResp.StatusCode)
	var precio struct {
		Stock       int    `json:"stock"`
		PrecioVenta string `json:"precio_venta"`
	}
	decodeJSON(t, precioResp, &precio)
	assert.Equal(t, 7, precio.Stock)
	assert.Equal(t, "8500", precio.PrecioVenta)
}

// Rejected recarga leaves no ledger row behind.
func TestE2E_RecargaSinCajaNoDejaRastro(t *testing.T) {
	env := setupTestEnv(t)

	recargaResp := do(t, env.server, "POST", "/v1/caja/recargas",
		jsonBody(t, map[string]any{
			"descripcion": "Recarga Movistar",
			"monto":       "5000",
		}), env.token)
	assert.Equal(t, http.StatusConflict, recargaResp.StatusCode)

	estadoResp := do(t, env.server, "GET", "/v1/caja", nil, env.token)
	require.Equal(t, http.StatusOK, estadoResp.StatusCode)
	var estado struct {
		Estado   string `json:"estado"`
		Recargas []any  `json:"recargas"`
	}
	decodeJSON(t, estadoResp, &estado)
	assert.Equal(t, "cerrada", estado.Estado)
	assert.Empty(t, estado.Recargas)
}
