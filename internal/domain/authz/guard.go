// Package authz implementa las reglas de autorización de los flujos de stock.
//
// Todas las funciones son puras: reciben el contexto de identidad y el documento (o la bodega)
// y no tocan almacenamiento. Las variantes Check* clasifican el rechazo:
//   - domain.ErrForbidden: rol o alcance de bodega insuficiente.
//   - domain.ErrInvalidStateTransition: el documento no está en el estado requerido.
//   - domain.ErrInvalidInput: al documento le falta un dato que la acción exige.
//
// Las variantes Can* devuelven solo permitido/denegado.
package authz

import (
	"fmt"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

func forbidden(action, reason string) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrForbidden, action, reason)
}

func requireRole(id entity.IdentityContext, action string, roles ...string) error {
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return forbidden(action, "rol "+id.Role+" no permitido")
}

// requireScope exige que la bodega esté en el alcance del actor; ADMIN pasa si adminBypass.
func requireScope(id entity.IdentityContext, action, warehouseID string, adminBypass bool) error {
	if adminBypass && id.IsAdmin() {
		return nil
	}
	if !id.HasWarehouse(warehouseID) {
		return forbidden(action, "bodega "+warehouseID+" fuera de alcance")
	}
	return nil
}

// ─── Recepciones ──────────────────────────────────────────────────────────────

// CheckCreateReceipt ADMIN, u OPERATOR con la bodega en alcance.
func CheckCreateReceipt(id entity.IdentityContext, warehouseID string) error {
	const action = "crear recepción"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleOperator); err != nil {
		return err
	}
	return requireScope(id, action, warehouseID, true)
}

// CheckValidateReceipt ADMIN/OPERATOR; la recepción no debe estar DONE.
func CheckValidateReceipt(id entity.IdentityContext, r *entity.Receipt) error {
	const action = "validar recepción"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleOperator); err != nil {
		return err
	}
	if r.Status == entity.ReceiptStatusDone {
		return domain.ErrAlreadyValidated
	}
	if r.Status != entity.ReceiptStatusWaiting && r.Status != entity.ReceiptStatusDraft {
		return domain.WrongStatus("recepción", r.ID, r.Status)
	}
	return requireScope(id, action, r.WarehouseID, true)
}

// ─── Ajustes ──────────────────────────────────────────────────────────────────

// CheckApplyAdjustment ADMIN en cualquier bodega; MANAGER/OPERATOR dentro de su alcance.
func CheckApplyAdjustment(id entity.IdentityContext, warehouseID string) error {
	const action = "aplicar ajuste"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleManager, entity.RoleOperator); err != nil {
		return err
	}
	return requireScope(id, action, warehouseID, true)
}

// ─── Entregas ─────────────────────────────────────────────────────────────────

// CheckCreateDelivery MANAGER u OPERATOR sobre su propia bodega; ADMIN sin restricción.
func CheckCreateDelivery(id entity.IdentityContext, warehouseID string) error {
	const action = "crear entrega"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleManager, entity.RoleOperator); err != nil {
		return err
	}
	return requireScope(id, action, warehouseID, true)
}

func checkDeliveryDecision(id entity.IdentityContext, d *entity.Delivery, action string) error {
	if err := requireRole(id, action, entity.RoleManager); err != nil {
		return err
	}
	if d.Status != entity.DeliveryStatusWaiting {
		return domain.WrongStatus("entrega", d.ID, d.Status)
	}
	if d.TargetWarehouseID == "" {
		return domain.Invalid("la entrega %s no tiene bodega destino", d.ID)
	}
	return requireScope(id, action, d.TargetWarehouseID, false)
}

// CheckApproveDelivery MANAGER de la bodega destino, entrega en WAITING.
func CheckApproveDelivery(id entity.IdentityContext, d *entity.Delivery) error {
	return checkDeliveryDecision(id, d, "aprobar entrega")
}

// CheckRejectDelivery misma compuerta que aprobar.
func CheckRejectDelivery(id entity.IdentityContext, d *entity.Delivery) error {
	return checkDeliveryDecision(id, d, "rechazar entrega")
}

// CheckValidateDelivery ADMIN/OPERATOR, entrega en READY o DRAFT, sin requisición,
// y bodega origen en alcance (salvo ADMIN).
func CheckValidateDelivery(id entity.IdentityContext, d *entity.Delivery) error {
	const action = "validar entrega"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleOperator); err != nil {
		return err
	}
	if d.Status != entity.DeliveryStatusReady && d.Status != entity.DeliveryStatusDraft {
		return domain.WrongStatus("entrega", d.ID, d.Status)
	}
	if d.HasRequisition() {
		return fmt.Errorf("%w: la entrega %s pertenece a una requisición y debe completarse con un traslado",
			domain.ErrInvalidStateTransition, d.ID)
	}
	return requireScope(id, action, d.WarehouseID, true)
}

// ─── Traslados ────────────────────────────────────────────────────────────────

// CheckCreateTransfer ADMIN, u OPERATOR con la bodega origen en alcance.
func CheckCreateTransfer(id entity.IdentityContext, sourceWarehouseID string) error {
	const action = "crear traslado"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleOperator); err != nil {
		return err
	}
	return requireScope(id, action, sourceWarehouseID, true)
}

// CheckCreateTransferFromDelivery OPERATOR de la bodega origen; entrega READY con requisición.
func CheckCreateTransferFromDelivery(id entity.IdentityContext, d *entity.Delivery) error {
	const action = "crear traslado desde entrega"
	if err := requireRole(id, action, entity.RoleOperator); err != nil {
		return err
	}
	if d.Status != entity.DeliveryStatusReady {
		return domain.WrongStatus("entrega", d.ID, d.Status)
	}
	if !d.HasRequisition() {
		return fmt.Errorf("%w: la entrega %s no proviene de una requisición", domain.ErrInvalidStateTransition, d.ID)
	}
	return requireScope(id, action, d.WarehouseID, false)
}

// CheckDispatchTransfer ADMIN/OPERATOR de la bodega origen, traslado en DRAFT.
func CheckDispatchTransfer(id entity.IdentityContext, t *entity.Transfer) error {
	const action = "despachar traslado"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleOperator); err != nil {
		return err
	}
	if t.Status != entity.TransferStatusDraft {
		return domain.WrongStatus("traslado", t.ID, t.Status)
	}
	return requireScope(id, action, t.SourceWarehouseID, true)
}

// CheckAcceptTransfer ADMIN/OPERATOR de la bodega destino, traslado IN_TRANSIT.
func CheckAcceptTransfer(id entity.IdentityContext, t *entity.Transfer) error {
	const action = "aceptar traslado"
	if err := requireRole(id, action, entity.RoleAdmin, entity.RoleOperator); err != nil {
		return err
	}
	if t.Status != entity.TransferStatusInTransit {
		return domain.WrongStatus("traslado", t.ID, t.Status)
	}
	return requireScope(id, action, t.TargetWarehouseID, true)
}

// ─── Requisiciones ────────────────────────────────────────────────────────────

// CheckCreateRequisition OPERATOR sobre su propia bodega solicitante.
func CheckCreateRequisition(id entity.IdentityContext, requestingWarehouseID string) error {
	const action = "crear requisición"
	if err := requireRole(id, action, entity.RoleOperator); err != nil {
		return err
	}
	return requireScope(id, action, requestingWarehouseID, false)
}

// CheckSubmitRequisition OPERATOR de la bodega solicitante, requisición en DRAFT.
func CheckSubmitRequisition(id entity.IdentityContext, r *entity.Requisition) error {
	const action = "enviar requisición"
	if err := requireRole(id, action, entity.RoleOperator); err != nil {
		return err
	}
	if r.Status != entity.RequisitionStatusDraft {
		return domain.WrongStatus("requisición", r.ID, r.Status)
	}
	return requireScope(id, action, r.RequestingWarehouseID, false)
}

// CheckApproveRequisition MANAGER, requisición en SUBMITTED.
func CheckApproveRequisition(id entity.IdentityContext, r *entity.Requisition) error {
	if err := requireRole(id, "aprobar requisición", entity.RoleManager); err != nil {
		return err
	}
	if r.Status != entity.RequisitionStatusSubmitted {
		return domain.WrongStatus("requisición", r.ID, r.Status)
	}
	return nil
}

// CheckRejectRequisition misma compuerta que aprobar.
func CheckRejectRequisition(id entity.IdentityContext, r *entity.Requisition) error {
	if err := requireRole(id, "rechazar requisición", entity.RoleManager); err != nil {
		return err
	}
	if r.Status != entity.RequisitionStatusSubmitted {
		return domain.WrongStatus("requisición", r.ID, r.Status)
	}
	return nil
}

// ─── Consultas ────────────────────────────────────────────────────────────────

// CheckViewWarehouse lectura de saldos/movimientos de una bodega: ADMIN, o bodega en alcance.
// warehouseID vacío (consulta global) queda reservado a ADMIN y MANAGER.
func CheckViewWarehouse(id entity.IdentityContext, warehouseID string) error {
	const action = "consultar stock"
	if !entity.ValidRole(id.Role) {
		return forbidden(action, "rol "+id.Role+" no permitido")
	}
	if warehouseID == "" {
		return requireRole(id, action, entity.RoleAdmin, entity.RoleManager)
	}
	return requireScope(id, action, warehouseID, true)
}
