package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

type request struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Reason      string `json:"reason" validate:"omitempty,oneof=DAMAGE LOSS"`
	Lines       []line `json:"lines" validate:"required,min=1,dive"`
}

func TestValidateStruct_OK(t *testing.T) {
	errs := ValidateStruct(request{WarehouseID: "wh", Lines: []line{{ProductID: "p", Quantity: 1}}})
	assert.Nil(t, errs)
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	errs := ValidateStruct(request{
		Reason: "OTRO",
		Lines:  []line{{ProductID: "p", Quantity: 0}},
	})
	require.Len(t, errs, 3)

	fields := Fields(errs)
	assert.Equal(t, "required", fields["warehouse_id"])
	assert.Equal(t, "oneof=DAMAGE LOSS", fields["reason"])
	assert.Equal(t, "gt=0", fields["lines[0].quantity"])
}

func TestFields_Empty(t *testing.T) {
	assert.Nil(t, Fields(nil))
}
