package entity

import "time"

// Motivos de ajuste.
const (
	AdjustmentReasonCountError = "COUNT_ERROR"
	AdjustmentReasonDamage     = "DAMAGE"
	AdjustmentReasonLoss       = "LOSS"
	AdjustmentReasonOther      = "OTHER"
)

// Adjustment fija el saldo a NewQuantity; se aplica como un único movimiento Delta = NewQuantity - PreviousQuantity.
type Adjustment struct {
	ID               string
	ProductID        string
	WarehouseID      string
	LocationID       string
	PreviousQuantity int64
	NewQuantity      int64
	Delta            int64
	Reason           string
	Remarks          string
	ActorID          string
	CreatedAt        time.Time
}

// ValidAdjustmentReason informa si el motivo es uno de los soportados.
func ValidAdjustmentReason(reason string) bool {
	switch reason {
	case AdjustmentReasonCountError, AdjustmentReasonDamage, AdjustmentReasonLoss, AdjustmentReasonOther:
		return true
	}
	return false
}
