package router

import (
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/config"
	"github.com/Josechaparro09/Papeleria-sub000/internal/handler"
	"github.com/Josechaparro09/Papeleria-sub000/internal/middleware"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"
	"github.com/Josechaparro09/Papeleria-sub000/internal/service"
	"github.com/Josechaparro09/Papeleria-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	loc := cfg.Location()

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	litografiaRepo := repository.NewLitografiaRepository(db)
	historialPrecioRepo := repository.NewHistorialPrecioRepository(db)
	movimientoStockRepo := repository.NewMovimientoStockRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, historialPrecioRepo, movimientoStockRepo, rdb)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, movimientoStockRepo, loc)
	gastoSvc := service.NewGastoService(gastoRepo, loc)
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo, gastoRepo, dispatcher, loc)
	litografiaSvc := service.NewLitografiaService(litografiaRepo, loc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductoHandler(productoSvc)
	ventasH := handler.NewVentaHandler(ventaSvc)
	gastosH := handler.NewGastoHandler(gastoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	litografiaH := handler.NewLitografiaHandler(litografiaSvc)
	consultaH := handler.NewConsultaPreciosHandler(productoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check for the in-store tablet — no auth required
	r.GET("/v1/precio/:id", consultaH.GetPrecio)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, administrador — declared per-endpoint
		caja := v1.Group("/caja")
		{
			caja.GET("", middleware.RequireRole("vendedor", "administrador"), cajaH.Estado)
			caja.POST("/abrir", middleware.RequireRole("vendedor", "administrador"), cajaH.Abrir)
			caja.POST("/cerrar", middleware.RequireRole("vendedor", "administrador"), cajaH.Cerrar)
			caja.GET("/resumen", middleware.RequireRole("vendedor", "administrador"), cajaH.Resumen)
			caja.GET("/recargas", middleware.RequireRole("vendedor", "administrador"), cajaH.Recargas)
			caja.POST("/recargas", middleware.RequireRole("vendedor", "administrador"), cajaH.RegistrarRecarga)
			caja.GET("/historial", middleware.RequireRole("administrador"), cajaH.Historial)
		}

		v1.POST("/ventas", middleware.RequireRole("vendedor", "administrador"), ventasH.Registrar)
		v1.GET("/ventas", middleware.RequireRole("vendedor", "administrador"), ventasH.Listar)

		v1.POST("/gastos", middleware.RequireRole("vendedor", "administrador"), gastosH.Registrar)
		v1.GET("/gastos", middleware.RequireRole("vendedor", "administrador"), gastosH.Listar)
		v1.DELETE("/gastos/:id", middleware.RequireRole("administrador"), gastosH.Eliminar)

		v1.GET("/productos", middleware.RequireRole("vendedor", "administrador"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("vendedor", "administrador"), productosH.Obtener)
		v1.GET("/productos/:id/historial-precios", middleware.RequireRole("vendedor", "administrador"), productosH.HistorialPrecios)
		v1.GET("/productos/alertas", middleware.RequireRole("vendedor", "administrador"), productosH.AlertasStock)
		// Write operations — administrador only
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.POST("/:id/stock", productosH.AjustarStock)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		lito := v1.Group("/litografia", middleware.RequireRole("vendedor", "administrador"))
		{
			lito.POST("", litografiaH.Crear)
			lito.GET("", litografiaH.Listar)
			lito.GET("/:id", litografiaH.Obtener)
			lito.POST("/:id/abonos", litografiaH.RegistrarAbono)
			lito.PATCH("/:id/entregar", litografiaH.MarcarEntregado)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
