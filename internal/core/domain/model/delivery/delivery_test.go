package delivery_test

import (
	"testing"
	"time"

	"cargotrack/internal/core/domain/model/delivery"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), "R001", time.Now())
	require.NoError(t, err)
	return d
}

func validProof(t *testing.T) delivery.ProofOfDelivery {
	t.Helper()

	proof, err := delivery.NewProofOfDelivery(nil, nil, "6.5244,3.3792", "Adebayo Johnson", time.Now())
	require.NoError(t, err)
	return proof
}

func TestNewDelivery(t *testing.T) {
	t.Run("starts dispatched and active", func(t *testing.T) {
		d := validDelivery(t)

		assert.Equal(t, item.Dispatched, d.Status())
		assert.True(t, d.IsActive())
		assert.Nil(t, d.PickedUpAt())
		assert.Nil(t, d.DeliveredAt())
		assert.Nil(t, d.Proof())
		require.NoError(t, d.Validate())
	})

	t.Run("requires rider", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), "", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var d delivery.Delivery
		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, d.Validate())
	})
}

func TestNewProofOfDelivery(t *testing.T) {
	t.Run("requires gps location", func(t *testing.T) {
		_, err := delivery.NewProofOfDelivery(nil, nil, "", "Adebayo Johnson", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires recipient name", func(t *testing.T) {
		_, err := delivery.NewProofOfDelivery(nil, nil, "6.5244,3.3792", "", time.Now())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("blobs optional", func(t *testing.T) {
		proof, err := delivery.NewProofOfDelivery([]byte("sig"), nil, "6.5244,3.3792", "Adebayo Johnson", time.Now())
		require.NoError(t, err)
		assert.Equal(t, []byte("sig"), proof.Signature())
		assert.Nil(t, proof.Photo())
	})
}

func TestDelivery_PickUp(t *testing.T) {
	t.Run("dispatched to in transit", func(t *testing.T) {
		d := validDelivery(t)
		at := time.Now()

		require.NoError(t, d.PickUp(at))

		assert.Equal(t, item.InTransit, d.Status())
		require.NotNil(t, d.PickedUpAt())
		assert.Equal(t, at, *d.PickedUpAt())
	})

	t.Run("pickup twice rejected", func(t *testing.T) {
		d := validDelivery(t)
		require.NoError(t, d.PickUp(time.Now()))

		err := d.PickUp(time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, item.InTransit, d.Status())
	})
}

func TestDelivery_Complete(t *testing.T) {
	t.Run("in transit to delivered with proof", func(t *testing.T) {
		d := validDelivery(t)
		require.NoError(t, d.PickUp(time.Now()))
		at := time.Now()

		require.NoError(t, d.Complete(at, validProof(t)))

		assert.Equal(t, item.Delivered, d.Status())
		assert.False(t, d.IsActive())
		require.NotNil(t, d.DeliveredAt())
		assert.Equal(t, at, *d.DeliveredAt())
		require.NotNil(t, d.Proof())
		assert.Equal(t, "Adebayo Johnson", d.Proof().RecipientName())
	})

	t.Run("complete while dispatched rejected, delivery unchanged", func(t *testing.T) {
		d := validDelivery(t)

		err := d.Complete(time.Now(), validProof(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, item.Dispatched, d.Status())
		assert.Nil(t, d.Proof())
		assert.Nil(t, d.DeliveredAt())
	})

	t.Run("invalid proof rejected before transition check", func(t *testing.T) {
		d := validDelivery(t)
		require.NoError(t, d.PickUp(time.Now()))

		var empty delivery.ProofOfDelivery
		err := d.Complete(time.Now(), empty)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, item.InTransit, d.Status())
		assert.Nil(t, d.Proof())
	})
}

func TestDelivery_Fail(t *testing.T) {
	t.Run("from dispatched", func(t *testing.T) {
		d := validDelivery(t)

		require.NoError(t, d.Fail("recipient unreachable"))

		assert.Equal(t, item.Failed, d.Status())
		assert.False(t, d.IsActive())
		assert.Equal(t, "recipient unreachable", d.FailureReason())
	})

	t.Run("from in transit", func(t *testing.T) {
		d := validDelivery(t)
		require.NoError(t, d.PickUp(time.Now()))

		require.NoError(t, d.Fail("address not found"))
		assert.Equal(t, item.Failed, d.Status())
	})

	t.Run("requires reason", func(t *testing.T) {
		d := validDelivery(t)

		err := d.Fail("")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, d.IsActive())
	})

	t.Run("terminal delivery cannot fail", func(t *testing.T) {
		d := validDelivery(t)
		require.NoError(t, d.PickUp(time.Now()))
		require.NoError(t, d.Complete(time.Now(), validProof(t)))

		err := d.Fail("too late")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestRestoreDelivery(t *testing.T) {
	pickedUp := time.Now().Add(-time.Hour)

	d, err := delivery.RestoreDelivery(
		kernel.NewUUID(), kernel.NewUUID(), "R001", item.InTransit,
		time.Now().Add(-2*time.Hour), &pickedUp, nil, nil, "",
	)

	require.NoError(t, err)
	assert.Equal(t, item.InTransit, d.Status())
	assert.True(t, d.IsActive())
}
