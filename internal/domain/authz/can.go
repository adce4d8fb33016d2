package authz

import "github.com/jhoicas/stockflow/internal/domain/entity"

// Predicados booleanos sobre las funciones Check*.

func CanCreateReceipt(id entity.IdentityContext, warehouseID string) bool {
	return CheckCreateReceipt(id, warehouseID) == nil
}

func CanValidateReceipt(id entity.IdentityContext, r *entity.Receipt) bool {
	return CheckValidateReceipt(id, r) == nil
}

func CanApplyAdjustment(id entity.IdentityContext, warehouseID string) bool {
	return CheckApplyAdjustment(id, warehouseID) == nil
}

func CanCreateDelivery(id entity.IdentityContext, warehouseID string) bool {
	return CheckCreateDelivery(id, warehouseID) == nil
}

func CanApproveDelivery(id entity.IdentityContext, d *entity.Delivery) bool {
	return CheckApproveDelivery(id, d) == nil
}

func CanRejectDelivery(id entity.IdentityContext, d *entity.Delivery) bool {
	return CheckRejectDelivery(id, d) == nil
}

func CanValidateDelivery(id entity.IdentityContext, d *entity.Delivery) bool {
	return CheckValidateDelivery(id, d) == nil
}

func CanCreateTransfer(id entity.IdentityContext, sourceWarehouseID string) bool {
	return CheckCreateTransfer(id, sourceWarehouseID) == nil
}

func CanCreateTransferFromDelivery(id entity.IdentityContext, d *entity.Delivery) bool {
	return CheckCreateTransferFromDelivery(id, d) == nil
}

func CanDispatchTransfer(id entity.IdentityContext, t *entity.Transfer) bool {
	return CheckDispatchTransfer(id, t) == nil
}

func CanAcceptTransfer(id entity.IdentityContext, t *entity.Transfer) bool {
	return CheckAcceptTransfer(id, t) == nil
}

func CanCreateRequisition(id entity.IdentityContext, requestingWarehouseID string) bool {
	return CheckCreateRequisition(id, requestingWarehouseID) == nil
}

func CanSubmitRequisition(id entity.IdentityContext, r *entity.Requisition) bool {
	return CheckSubmitRequisition(id, r) == nil
}

func CanApproveRequisition(id entity.IdentityContext, r *entity.Requisition) bool {
	return CheckApproveRequisition(id, r) == nil
}

func CanRejectRequisition(id entity.IdentityContext, r *entity.Requisition) bool {
	return CheckRejectRequisition(id, r) == nil
}

func CanViewWarehouse(id entity.IdentityContext, warehouseID string) bool {
	return CheckViewWarehouse(id, warehouseID) == nil
}
