package services

import (
	"fmt"
	"math/rand/v2"
	"time"

	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/item"

	"github.com/google/uuid"
)

// IdentityGenerator produces the generated identifiers of the ingestion flow:
// batch numbers, item tracking numbers, and QR code payloads.
//
// Generated numbers are random within their format; uniqueness is enforced by
// database constraints, and a collision surfaces as a duplicate identifier
// error rather than being silently retried.
type IdentityGenerator struct{}

// NewIdentityGenerator creates an identity generator.
func NewIdentityGenerator() IdentityGenerator {
	return IdentityGenerator{}
}

// BatchNumber generates a batch number in "BATCH-<yyyymmdd>-<4 digits>" form.
func (IdentityGenerator) BatchNumber(now time.Time) (batch.Number, error) {
	value := fmt.Sprintf("BATCH-%s-%04d", now.Format("20060102"), rand.IntN(10000)) //nolint:gosec // it's ok
	return batch.NewNumber(value)
}

// ItemNumber generates a tracking number in "CB-<year>-<6 digits>" form.
func (IdentityGenerator) ItemNumber(now time.Time) (item.Number, error) {
	value := fmt.Sprintf("CB-%d-%06d", now.Year(), rand.IntN(1000000)) //nolint:gosec // it's ok
	return item.NewNumber(value)
}

// QRCode generates a globally unique QR code payload.
func (IdentityGenerator) QRCode() string {
	return uuid.NewString()
}
