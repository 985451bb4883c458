package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Josechaparro09/Papeleria-sub000/internal/dto"
	"github.com/Josechaparro09/Papeleria-sub000/internal/model"
	"github.com/Josechaparro09/Papeleria-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrStockInsuficiente = errors.New("stock insuficiente")

type VentaService interface {
	// Registrar records a sale dated today. It does NOT require an open
	// caja: the sale joins whichever register covers its date.
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	stockRepo    repository.MovimientoStockRepository
	loc          *time.Location
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	stockRepo repository.MovimientoStockRepository,
	loc *time.Location,
) VentaService {
	if loc == nil {
		loc = time.UTC
	}
	return &ventaService{repo: repo, productoRepo: productoRepo, stockRepo: stockRepo, loc: loc}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ventaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	type resolvedItem struct {
		productoID    *uuid.UUID
		descripcion   string
		cantidad      int
		precio        decimal.Decimal
		subtotal      decimal.Decimal
		stockAnterior int
	}

	// Pre-flight outside the transaction: resolve products, validate stock.
	var resolved []resolvedItem
	total := decimal.Zero
	for _, item := range req.Items {
		ri := resolvedItem{
			descripcion: item.Descripcion,
			cantidad:    item.Cantidad,
			precio:      item.PrecioUnitario,
		}
		if req.Tipo == "producto" {
			if item.ProductoID == nil {
				return nil, errors.New("producto_id es obligatorio en ventas de producto")
			}
			pid, err := uuid.Parse(*item.ProductoID)
			if err != nil {
				return nil, fmt.Errorf("producto_id inválido: %w", err)
			}
			p, err := s.productoRepo.FindByID(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("producto %s no encontrado", *item.ProductoID)
			}
			if !p.Activo {
				return nil, fmt.Errorf("el producto %s está inactivo y no puede venderse", p.Nombre)
			}
			if p.Stock < item.Cantidad {
				return nil, fmt.Errorf("%w: %s (disponible %d, solicitado %d)", ErrStockInsuficiente, p.Nombre, p.Stock, item.Cantidad)
			}
			ri.productoID = &pid
			ri.descripcion = p.Nombre
			ri.precio = p.PrecioVenta
			ri.stockAnterior = p.Stock
		} else if ri.descripcion == "" {
			return nil, errors.New("la descripción es obligatoria en ventas de servicio")
		}
		ri.subtotal = ri.precio.Mul(decimal.NewFromInt(int64(ri.cantidad)))
		total = total.Add(ri.subtotal)
		resolved = append(resolved, ri)
	}

	now := time.Now().In(s.loc)
	venta := model.Venta{
		Fecha:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc),
		Tipo:        req.Tipo,
		MetodoPago:  req.MetodoPago,
		Total:       total,
		Descripcion: req.Descripcion,
		UsuarioID:   usuarioID,
	}
	for _, ri := range resolved {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     ri.productoID,
			Descripcion:    ri.descripcion,
			Cantidad:       ri.cantidad,
			PrecioUnitario: ri.precio,
			Subtotal:       ri.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		for _, ri := range resolved {
			if ri.productoID == nil {
				continue
			}
			if err := s.productoRepo.UpdateStockTx(tx, *ri.productoID, -ri.cantidad); err != nil {
				return err
			}
			ventaID := venta.ID
			if err := s.stockRepo.CreateTx(tx, &model.MovimientoStock{
				ProductoID:    *ri.productoID,
				Tipo:          "venta",
				Cantidad:      -ri.cantidad,
				StockAnterior: ri.stockAnterior,
				StockNuevo:    ri.stockAnterior - ri.cantidad,
				Motivo:        "venta",
				ReferenciaID:  &ventaID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return ventaToResponse(&venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data[i] = *ventaToResponse(&ventas[i])
	}
	return resp, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.VentaItemResponse, len(v.Items))
	for i, item := range v.Items {
		var pid *string
		if item.ProductoID != nil {
			s := item.ProductoID.String()
			pid = &s
		}
		items[i] = dto.VentaItemResponse{
			ProductoID:     pid,
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
	}
	return &dto.VentaResponse{
		ID:          v.ID.String(),
		Fecha:       v.Fecha.Format("2006-01-02"),
		Tipo:        v.Tipo,
		MetodoPago:  v.MetodoPago,
		Total:       v.Total,
		Descripcion: v.Descripcion,
		Items:       items,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}
