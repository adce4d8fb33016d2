package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	domaininv "github.com/jhoicas/stockflow/internal/domain/inventory"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

// MovementInput datos de un movimiento a aplicar sobre el libro de stock.
type MovementInput struct {
	Key           entity.BalanceKey
	Change        int64
	Type          string
	SourceDocType string
	SourceDocID   string
	ActorID       string
	WarehouseFrom string
	LocationFrom  string
	WarehouseTo   string
	LocationTo    string
}

// Availability resultado de una consulta de disponibilidad.
type Availability struct {
	Available         bool  `json:"available"`
	AvailableQuantity int64 `json:"available_quantity"`
}

// Ledger es el libro de stock: saldo materializado + log append-only de movimientos.
// Se construye sobre repositorios de una transacción, de modo que saldo y movimiento
// se confirman o se descartan juntos.
type Ledger struct {
	stock     repository.StockRepository
	movements repository.StockMovementRepository
}

// NewLedger construye el libro sobre los repositorios de la transacción en curso.
func NewLedger(stock repository.StockRepository, movements repository.StockMovementRepository) *Ledger {
	return &Ledger{stock: stock, movements: movements}
}

// LedgerFor atajo para construir el libro desde TxRepos.
func LedgerFor(repos TxRepos) *Ledger {
	return NewLedger(repos.Stock, repos.Movements)
}

// ApplyMovement suma Change al saldo (creándolo si no existe) y agrega el movimiento al log.
// No valida disponibilidad: es responsabilidad del llamador.
func (l *Ledger) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.Change == 0 {
		return nil, domain.Invalid("movimiento con cambio cero")
	}
	if _, err := l.stock.Add(ctx, in.Key, in.Change); err != nil {
		return nil, err
	}
	return l.record(ctx, in)
}

// ApplyGuardedMovement igual que ApplyMovement pero los decrementos son condicionales:
// si el saldo quedaría negativo no se escribe nada y se devuelve InsufficientStockError.
func (l *Ledger) ApplyGuardedMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.Change >= 0 {
		return l.ApplyMovement(ctx, in)
	}
	qty, ok, err := l.stock.AddIfSufficient(ctx, in.Key, in.Change)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.InsufficientStockError{Shortages: []domain.StockShortage{{
			ProductID:   in.Key.ProductID,
			WarehouseID: in.Key.WarehouseID,
			LocationID:  in.Key.LocationID,
			Requested:   -in.Change,
			Available:   qty,
		}}}
	}
	return l.record(ctx, in)
}

func (l *Ledger) record(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	m := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     in.Key.ProductID,
		WarehouseID:   in.Key.WarehouseID,
		LocationID:    in.Key.LocationID,
		Change:        in.Change,
		Type:          in.Type,
		SourceDocType: in.SourceDocType,
		SourceDocID:   in.SourceDocID,
		WarehouseFrom: in.WarehouseFrom,
		LocationFrom:  in.LocationFrom,
		WarehouseTo:   in.WarehouseTo,
		LocationTo:    in.LocationTo,
		ActorID:       in.ActorID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := l.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// QueryBalance devuelve la cantidad actual de la clave (0 si no hay fila).
func (l *Ledger) QueryBalance(ctx context.Context, key entity.BalanceKey) (int64, error) {
	b, err := l.stock.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, nil
	}
	return b.Quantity, nil
}

// QueryAvailability disponibilidad exacta en la clave (bodega + ubicación o sin ubicación).
func (l *Ledger) QueryAvailability(ctx context.Context, key entity.BalanceKey, required int64) (Availability, error) {
	qty, err := l.QueryBalance(ctx, key)
	if err != nil {
		return Availability{}, err
	}
	return Availability{Available: qty >= required, AvailableQuantity: qty}, nil
}

// QueryWarehouseAvailability disponibilidad sumando todas las ubicaciones de la bodega.
func (l *Ledger) QueryWarehouseAvailability(ctx context.Context, productID, warehouseID string, required int64) (Availability, error) {
	balances, err := l.stock.ListByWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return Availability{}, err
	}
	var total int64
	for _, b := range balances {
		if b.Quantity > 0 {
			total += b.Quantity
		}
	}
	return Availability{Available: total >= required, AvailableQuantity: total}, nil
}

// Allocate reparte qty sobre la bodega a partir de la ubicación preferida, descontando lo ya
// reservado en res. Con strict solo se considera la ubicación preferida.
func (l *Ledger) Allocate(ctx context.Context, productID, warehouseID, preferredLocationID string, qty int64, strict bool, res domaininv.Reservations) ([]domaininv.Slice, int64, error) {
	balances, err := l.stock.ListByWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return nil, 0, err
	}
	if strict {
		only := balances[:0:0]
		for _, b := range balances {
			if b.LocationID == preferredLocationID {
				only = append(only, b)
			}
		}
		balances = only
	}
	slices, available := domaininv.Allocate(res.Net(balances), preferredLocationID, qty)
	return slices, available, nil
}

// OutboundLine línea de salida a planificar.
type OutboundLine struct {
	ProductID  string
	LocationID string
	Quantity   int64
	// Strict: solo la ubicación indicada (o solo stock sin ubicación si LocationID es vacío).
	Strict bool
}

// PlannedLine porciones resueltas para una línea de salida.
type PlannedLine struct {
	Index     int
	ProductID string
	Slices    []domaininv.Slice
}

// PlanOutbound verifica TODAS las líneas antes de cualquier mutación. Si alguna no alcanza,
// devuelve InsufficientStockError con cada línea faltante y no escribe nada.
func (l *Ledger) PlanOutbound(ctx context.Context, warehouseID string, lines []OutboundLine) ([]PlannedLine, error) {
	res := domaininv.Reservations{}
	plan := make([]PlannedLine, 0, len(lines))
	var shortages []domain.StockShortage
	for i, line := range lines {
		slices, available, err := l.Allocate(ctx, line.ProductID, warehouseID, line.LocationID, line.Quantity, line.Strict, res)
		if err != nil {
			return nil, err
		}
		if slices == nil {
			shortages = append(shortages, domain.StockShortage{
				LineIndex:   i,
				ProductID:   line.ProductID,
				WarehouseID: warehouseID,
				LocationID:  line.LocationID,
				Requested:   line.Quantity,
				Available:   available,
			})
			continue
		}
		res.Reserve(line.ProductID, warehouseID, slices)
		plan = append(plan, PlannedLine{Index: i, ProductID: line.ProductID, Slices: slices})
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}
	return plan, nil
}

// ApplyOutbound aplica un plan con decrementos condicionales. Si otra transacción consumió el
// stock entre el plan y la escritura, devuelve InsufficientStockError con el índice de la línea
// y la transacción completa debe revertirse.
// template construye los datos del movimiento para la línea indicada; Key, Change y LocationFrom
// se completan por cada porción.
func (l *Ledger) ApplyOutbound(ctx context.Context, warehouseID string, plan []PlannedLine, template func(lineIndex int) MovementInput) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, pl := range plan {
		for _, s := range pl.Slices {
			in := template(pl.Index)
			in.Key = entity.BalanceKey{ProductID: pl.ProductID, WarehouseID: warehouseID, LocationID: s.LocationID}
			in.Change = -s.Quantity
			in.LocationFrom = s.LocationID
			m, err := l.ApplyGuardedMovement(ctx, in)
			if err != nil {
				shortages := domain.ShortagesOf(err)
				for i := range shortages {
					shortages[i].LineIndex = pl.Index
				}
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}
