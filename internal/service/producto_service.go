package service

import (
	"context"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// PrecioCachePrefix keys the public price cache in Redis.
const PrecioCachePrefix = "precio:"

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	AlertasStock(ctx context.Context) ([]dto.ProductoResponse, error)
	HistorialPrecios(ctx context.Context, id uuid.UUID) ([]dto.HistorialPrecioResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	historialRepo repository.HistorialPrecioRepository
	stockRepo     repository.MovimientoStockRepository
	rdb           *redis.Client // nil in unit tests
}

func NewProductoService(
	repo repository.ProductoRepository,
	historialRepo repository.HistorialPrecioRepository,
	stockRepo repository.MovimientoStockRepository,
	rdb *redis.Client,
) ProductoService {
	return &productoService{repo: repo, historialRepo: historialRepo, stockRepo: stockRepo, rdb: rdb}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := model.Producto{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Categoria:    req.Categoria,
		PrecioCompra: req.PrecioCompra,
		PrecioVenta:  req.PrecioVenta,
		Stock:        req.Stock,
		StockMinimo:  req.StockMinimo,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productoToResponse(&p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, len(productos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range productos {
		resp.Data[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	compraAntes := p.PrecioCompra
	ventaAntes := p.PrecioVenta

	if req.Nombre != "" {
		p.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Categoria != "" {
		p.Categoria = req.Categoria
	}
	if req.PrecioCompra != nil {
		p.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	precioCambio := !p.PrecioCompra.Equal(compraAntes) || !p.PrecioVenta.Equal(ventaAntes)
	if precioCambio {
		if err := s.historialRepo.Create(ctx, &model.HistorialPrecio{
			ProductoID:    p.ID,
			CompraAntes:   compraAntes,
			CompraDespues: p.PrecioCompra,
			VentaAntes:    ventaAntes,
			VentaDespues:  p.PrecioVenta,
			Motivo:        "manual",
		}); err != nil {
			log.Error().Err(err).Str("producto_id", p.ID.String()).Msg("no se pudo registrar el historial de precio")
		}
		s.invalidarCachePrecio(ctx, p.ID)
	}

	return productoToResponse(p), nil
}

func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Stock+req.Delta < 0 {
		return nil, ErrStockInsuficiente
	}

	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	if err := s.stockRepo.Create(ctx, &model.MovimientoStock{
		ProductoID:    id,
		Tipo:          "ajuste_manual",
		Cantidad:      req.Delta,
		StockAnterior: p.Stock,
		StockNuevo:    p.Stock + req.Delta,
		Motivo:        req.Motivo,
	}); err != nil {
		log.Error().Err(err).Str("producto_id", id.String()).Msg("no se pudo registrar el movimiento de stock")
	}

	p.Stock += req.Delta
	s.invalidarCachePrecio(ctx, id)
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePrecio(ctx, id)
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *productoService) AlertasStock(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) HistorialPrecios(ctx context.Context, id uuid.UUID) ([]dto.HistorialPrecioResponse, error) {
	hist, err := s.historialRepo.ListByProducto(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HistorialPrecioResponse, len(hist))
	for i, h := range hist {
		resp[i] = dto.HistorialPrecioResponse{
			CompraAntes:   h.CompraAntes,
			CompraDespues: h.CompraDespues,
			VentaAntes:    h.VentaAntes,
			VentaDespues:  h.VentaDespues,
			Motivo:        h.Motivo,
			CreatedAt:     h.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *productoService) invalidarCachePrecio(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, PrecioCachePrefix+id.String()).Err(); err != nil {
		log.Warn().Err(err).Str("producto_id", id.String()).Msg("no se pudo invalidar la cache de precios")
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID.String(),
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Categoria:    p.Categoria,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Stock:        p.Stock,
		StockMinimo:  p.StockMinimo,
		Activo:       p.Activo,
	}
}
