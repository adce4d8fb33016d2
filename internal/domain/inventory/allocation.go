package inventory

import (
	"sort"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// Slice porción de una salida asignada a una ubicación concreta ("" = stock sin ubicación).
type Slice struct {
	LocationID string
	Quantity   int64
}

// Allocate reparte qty entre los saldos de un producto en una bodega (servicio de dominio).
// Orden de consumo: ubicación preferida, stock sin ubicación, resto de ubicaciones por cantidad desc
// (empate por id). Saldos <= 0 se ignoran.
// Devuelve las porciones y el total disponible; si available < qty, slices es nil.
func Allocate(balances []*entity.StockBalance, preferredLocationID string, qty int64) (slices []Slice, available int64) {
	ordered := make([]*entity.StockBalance, 0, len(balances))
	for _, b := range balances {
		if b.Quantity > 0 {
			ordered = append(ordered, b)
			available += b.Quantity
		}
	}
	if available < qty || qty <= 0 {
		return nil, available
	}
	rank := func(b *entity.StockBalance) int {
		switch {
		case preferredLocationID != "" && b.LocationID == preferredLocationID:
			return 0
		case b.LocationID == "":
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := rank(ordered[i]), rank(ordered[j])
		if ri != rj {
			return ri < rj
		}
		if ordered[i].Quantity != ordered[j].Quantity {
			return ordered[i].Quantity > ordered[j].Quantity
		}
		return ordered[i].LocationID < ordered[j].LocationID
	})
	remaining := qty
	for _, b := range ordered {
		if remaining == 0 {
			break
		}
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		slices = append(slices, Slice{LocationID: b.LocationID, Quantity: take})
		remaining -= take
	}
	return slices, available
}

// Reservations lleva la cuenta de lo ya comprometido por clave dentro de una misma operación,
// para que varias líneas del mismo producto no cuenten dos veces el mismo saldo.
type Reservations map[entity.BalanceKey]int64

// Net devuelve los saldos descontando lo reservado.
func (r Reservations) Net(balances []*entity.StockBalance) []*entity.StockBalance {
	out := make([]*entity.StockBalance, 0, len(balances))
	for _, b := range balances {
		nb := *b
		nb.Quantity -= r[b.Key()]
		out = append(out, &nb)
	}
	return out
}

// Reserve registra las porciones asignadas.
func (r Reservations) Reserve(productID, warehouseID string, slices []Slice) {
	for _, s := range slices {
		r[entity.BalanceKey{ProductID: productID, WarehouseID: warehouseID, LocationID: s.LocationID}] += s.Quantity
	}
}
