package commands

import (
	"errors"

	"cargotrack/internal/core/domain/services"
	"cargotrack/internal/pkg/guard"
)

var (
	ErrCreateBatchCommandIsNotConstructed = errors.New(
		"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
	)
	ErrClientIDIsRequired   = errors.New("client id is required")
	ErrUploadedByIsRequired = errors.New("uploaded by is required")
	ErrManifestIsRequired   = errors.New("manifest must contain at least one record")
)

// CreateBatchCommand represents a request to ingest an uploaded item manifest
// as one batch. Raw records are carried as-is; filtering of malformed records
// happens in the handler via the manifest parser.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	clientID    string
	uploadedBy  string
	description string
	records     []services.RawItemRecord

	guard guard.ConstructorGuard
}

// NewCreateBatchCommand creates a command to ingest a manifest.
// Validates that client id and uploader are present and the manifest is
// non-empty. Returns an error if any validation fails.
func NewCreateBatchCommand(
	clientID, uploadedBy, description string,
	records []services.RawItemRecord,
) (CreateBatchCommand, error) {
	batchCommand := CreateBatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		batchCommand.setClientID(clientID),
		batchCommand.setUploadedBy(uploadedBy),
		batchCommand.setRecords(records),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	batchCommand.description = description
	return batchCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateBatchCommandIsNotConstructed if validation fails.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// ClientID returns the submitting client's identifier.
func (c CreateBatchCommand) ClientID() string {
	return c.clientID
}

// UploadedBy returns the uploader's identifier.
func (c CreateBatchCommand) UploadedBy() string {
	return c.uploadedBy
}

// Description returns the free-form manifest description.
func (c CreateBatchCommand) Description() string {
	return c.description
}

// Records returns the raw manifest records.
func (c CreateBatchCommand) Records() []services.RawItemRecord {
	return c.records
}

func (c *CreateBatchCommand) setClientID(clientID string) error {
	if clientID == "" {
		return ErrClientIDIsRequired
	}

	c.clientID = clientID
	return nil
}

func (c *CreateBatchCommand) setUploadedBy(uploadedBy string) error {
	if uploadedBy == "" {
		return ErrUploadedByIsRequired
	}

	c.uploadedBy = uploadedBy
	return nil
}

func (c *CreateBatchCommand) setRecords(records []services.RawItemRecord) error {
	if len(records) == 0 {
		return ErrManifestIsRequired
	}

	c.records = records
	return nil
}
