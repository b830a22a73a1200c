// Package batch contains the Batch aggregate: a manifest-driven group of items
// ingested together in one atomic unit. The total item count recorded on a
// batch is fixed at ingestion and must equal the number of items persisted
// with the batch id.
package batch

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/errs"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not created
	// through NewBatch or RestoreBatch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or RestoreBatch")

	batchNumberPattern = regexp.MustCompile(`^BATCH-\d{8}-\d{4}$`)
)

// Number is the generated, unique batch number in "BATCH-<date>-<4 digits>" form.
type Number struct {
	value string
}

// NewNumber validates and wraps a batch number string.
func NewNumber(value string) (Number, error) {
	if value == "" {
		return Number{}, errs.NewValueIsRequiredError("batchNumber")
	}
	if !batchNumberPattern.MatchString(value) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("batchNumber",
			fmt.Errorf("%q does not match BATCH-<date>-<4 digits>", value))
	}
	return Number{value: value}, nil
}

// String returns the batch number, e.g. "BATCH-20240131-0042".
func (n Number) String() string {
	return n.value
}

// Validate checks the number was created via NewNumber.
func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("batchNumber must be created via NewNumber")
	}
	return nil
}

// Batch is the aggregate root for a manifest submission.
type Batch struct {
	id          kernel.UUID
	number      Number
	clientID    string
	totalItems  int
	uploadedBy  string
	status      Status
	description string
	uploadedAt  time.Time

	isConstructed bool
}

// NewBatch creates a Batch in processing status. totalItems must match the
// number of items ingested in the same transaction; the value never changes
// afterwards.
func NewBatch(
	id kernel.UUID,
	number Number,
	clientID string,
	totalItems int,
	uploadedBy string,
	description string,
	uploadedAt time.Time,
) (*Batch, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
	); err != nil {
		return nil, err
	}
	if clientID == "" {
		return nil, errs.NewValueIsRequiredError("clientId")
	}
	if uploadedBy == "" {
		return nil, errs.NewValueIsRequiredError("uploadedBy")
	}
	if totalItems <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalItems",
			fmt.Errorf("%d must be greater than 0", totalItems))
	}
	if uploadedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("uploadedAt")
	}

	return &Batch{
		id:            id,
		number:        number,
		clientID:      clientID,
		totalItems:    totalItems,
		uploadedBy:    uploadedBy,
		status:        Processing,
		description:   description,
		uploadedAt:    uploadedAt,
		isConstructed: true,
	}, nil
}

// RestoreBatch reconstructs a Batch from persistence.
func RestoreBatch(
	id kernel.UUID,
	number Number,
	clientID string,
	totalItems int,
	uploadedBy string,
	status Status,
	description string,
	uploadedAt time.Time,
) (*Batch, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Batch{
		id:            id,
		number:        number,
		clientID:      clientID,
		totalItems:    totalItems,
		uploadedBy:    uploadedBy,
		status:        status,
		description:   description,
		uploadedAt:    uploadedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Batch was constructed through NewBatch or RestoreBatch.
func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// Number returns the generated batch number.
func (b *Batch) Number() Number {
	return b.number
}

// ClientID returns the submitting client's identifier.
func (b *Batch) ClientID() string {
	return b.clientID
}

// TotalItems returns the fixed count of items ingested with the batch.
func (b *Batch) TotalItems() int {
	return b.totalItems
}

// UploadedBy returns the uploader's identifier.
func (b *Batch) UploadedBy() string {
	return b.uploadedBy
}

// Status returns the current batch status.
func (b *Batch) Status() Status {
	return b.status
}

// Description returns the free-form manifest description.
func (b *Batch) Description() string {
	return b.description
}

// UploadedAt returns the ingestion timestamp.
func (b *Batch) UploadedAt() time.Time {
	return b.uploadedAt
}

// Advance moves the batch status forward. Moving backwards or to the current
// status is rejected; total item count is untouched.
func (b *Batch) Advance(target Status) error {
	if !b.status.CanAdvanceTo(target) {
		return errs.NewInvalidTransitionError("batch", b.status.String(), target.String())
	}

	b.status = target
	return nil
}
