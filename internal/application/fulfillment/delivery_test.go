package fulfillment_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

func manualDelivery(lines ...dto.DeliveryLineRequest) dto.CreateDeliveryRequest {
	return dto.CreateDeliveryRequest{WarehouseID: whA, Lines: lines}
}

func TestDelivery_ManualDesdeDraft(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, locA1), 10)

	d, err := f.deliveries.CreateDelivery(f.ctx, operatorA, manualDelivery(
		dto.DeliveryLineRequest{ProductID: prodP, FromLocationID: locA1, Quantity: 4},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDraft, d.Status, "sin destino inicia en DRAFT")
	assert.Equal(t, "DEL/00001", d.Number)

	d, err = f.deliveries.ValidateDelivery(f.ctx, operatorA, d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDone, d.Status)
	assert.Equal(t, int64(6), f.balance(t, key(prodP, whA, locA1)))
	f.assertConserved(t, key(prodP, whA, locA1))
}

func TestDelivery_AprobacionDelManagerDestino(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, ""), 10)

	d, err := f.deliveries.CreateDelivery(f.ctx, managerA, dto.CreateDeliveryRequest{
		WarehouseID: whA, TargetWarehouseID: whB,
		Lines: []dto.DeliveryLineRequest{{ProductID: prodP, Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusWaiting, d.Status)

	_, err = f.deliveries.ValidateDelivery(f.ctx, operatorA, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "WAITING no se valida")

	_, err = f.deliveries.ApproveDelivery(f.ctx, managerA, d.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "aprueba el manager destino, no el origen")

	d, err = f.deliveries.ApproveDelivery(f.ctx, managerB, d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusReady, d.Status)
	assert.Equal(t, managerB.UserID, d.ApprovedBy)

	d, err = f.deliveries.ValidateDelivery(f.ctx, operatorA, d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDone, d.Status)
	assert.Zero(t, f.balance(t, key(prodP, whA, "")))

	// Terminal: ninguna transición posterior procede.
	_, err = f.deliveries.ValidateDelivery(f.ctx, operatorA, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	_, err = f.deliveries.RejectDelivery(f.ctx, managerB, d.ID, "tarde")
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestDelivery_RechazoAgregaMotivoANotas(t *testing.T) {
	f := newFixture(t)
	in := dto.CreateDeliveryRequest{
		WarehouseID: whA, TargetWarehouseID: whB, Notes: "urgente",
		Lines: []dto.DeliveryLineRequest{{ProductID: prodP, Quantity: 1}},
	}
	d, err := f.deliveries.CreateDelivery(f.ctx, operatorA, in)
	require.NoError(t, err)

	d, err = f.deliveries.RejectDelivery(f.ctx, managerB, d.ID, "sin espacio")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusRejected, d.Status)
	assert.Equal(t, "urgente\nRechazo: sin espacio", d.Notes)

	_, err = f.deliveries.ApproveDelivery(f.ctx, managerB, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestDelivery_FaltanteReportaTodasLasLineasYNoMueveStock(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, locA1), 3)
	f.seed(t, key(prodQ, whA, ""), 50)

	d, err := f.deliveries.CreateDelivery(f.ctx, operatorA, manualDelivery(
		dto.DeliveryLineRequest{ProductID: prodP, FromLocationID: locA1, Quantity: 5},
		dto.DeliveryLineRequest{ProductID: prodQ, Quantity: 20},
		dto.DeliveryLineRequest{ProductID: prodQ, Quantity: 40},
	))
	require.NoError(t, err)

	_, err = f.deliveries.ValidateDelivery(f.ctx, operatorA, d.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	shortages := domain.ShortagesOf(err)
	require.Len(t, shortages, 2)
	assert.Equal(t, domain.StockShortage{LineIndex: 0, ProductID: prodP, WarehouseID: whA, LocationID: locA1, Requested: 5, Available: 3}, shortages[0])
	assert.Equal(t, domain.StockShortage{LineIndex: 2, ProductID: prodQ, WarehouseID: whA, Requested: 40, Available: 30}, shortages[1])

	assert.Zero(t, f.movementCount(t, d.ID))
	assert.Equal(t, int64(50), f.balance(t, key(prodQ, whA, "")))
	got, err := f.deliveries.GetDelivery(f.ctx, operatorA, d.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDraft, got.Status)
}

func TestDelivery_ValidacionConcurrenteSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	f.seed(t, key(prodP, whA, ""), 100)
	d, err := f.deliveries.CreateDelivery(f.ctx, operatorA, manualDelivery(dto.DeliveryLineRequest{ProductID: prodP, Quantity: 10}))
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.deliveries.ValidateDelivery(f.ctx, operatorA, d.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, int64(90), f.balance(t, key(prodP, whA, "")))
	assert.Equal(t, 1, f.movementCount(t, d.ID))
}

func TestDelivery_Validaciones(t *testing.T) {
	f := newFixture(t)

	_, err := f.deliveries.CreateDelivery(f.ctx, operatorA, manualDelivery())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.deliveries.CreateDelivery(f.ctx, operatorB, manualDelivery(dto.DeliveryLineRequest{ProductID: prodP, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.deliveries.CreateDelivery(f.ctx, operatorA, manualDelivery(dto.DeliveryLineRequest{ProductID: prodP, FromLocationID: locB, Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.deliveries.CreateDelivery(f.ctx, operatorA, dto.CreateDeliveryRequest{
		WarehouseID: whA, TargetWarehouseID: whA,
		Lines: []dto.DeliveryLineRequest{{ProductID: prodP, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.deliveries.GetDelivery(f.ctx, operatorA, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
