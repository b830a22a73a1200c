package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cargotrack/internal/core/application/events"
	"cargotrack/internal/core/domain/model/batch"
	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/core/domain/services"
	"cargotrack/internal/core/ports"
)

// ErrEmptyBatch is returned when every manifest record was malformed and
// nothing survived parsing. No rows are written and no event is published.
var ErrEmptyBatch = errors.New("no valid records in manifest")

// CreateBatchCommandHandler handles atomic batch ingestion: it parses the
// manifest, creates the batch and all surviving items as one transactional
// unit, and publishes exactly one batch-uploaded event after commit.
//
// Identifier collisions (tracking number, QR code, batch number) roll the
// whole unit back and surface as duplicate identifier errors; they are never
// silently retried.
type CreateBatchCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
	parser     services.ManifestParser
	identity   services.IdentityGenerator
	logger     *slog.Logger
}

// NewCreateBatchCommandHandler creates a handler for batch ingestion.
func NewCreateBatchCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateBatchCommandHandler {
	return CreateBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		parser:     services.NewManifestParser(),
		identity:   services.NewIdentityGenerator(),
		logger:     logger.With("component", "create_batch_handler"),
	}
}

// Handle processes the batch ingestion command.
// Returns the created batch, or ErrEmptyBatch before any write when zero
// records survive parsing.
func (h CreateBatchCommandHandler) Handle(ctx context.Context, cmd CreateBatchCommand) (*batch.Batch, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	parsed, dropped := h.parser.Parse(cmd.Records())
	if dropped > 0 {
		h.logger.InfoContext(ctx, "dropped malformed manifest records", "dropped", dropped)
	}
	if len(parsed) == 0 {
		return nil, ErrEmptyBatch
	}

	now := time.Now().UTC()

	batchNumber, err := h.identity.BatchNumber(now)
	if err != nil {
		return nil, err
	}

	newBatch, err := batch.NewBatch(
		kernel.NewUUID(),
		batchNumber,
		cmd.ClientID(),
		len(parsed),
		cmd.UploadedBy(),
		cmd.Description(),
		now,
	)
	if err != nil {
		return nil, err
	}

	items := make([]*item.Item, 0, len(parsed))
	for _, record := range parsed {
		itemNumber, numErr := h.identity.ItemNumber(now)
		if numErr != nil {
			return nil, numErr
		}

		newItem, itemErr := item.NewItem(
			kernel.NewUUID(),
			newBatch.ID(),
			itemNumber,
			h.identity.QRCode(),
			record.Contact,
			record.Address,
			now,
		)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, newItem)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BatchRepository().Add(ctx, newBatch); err != nil {
		return nil, err
	}

	if err = uow.ItemRepository().AddAll(ctx, items); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishBestEffort(ctx, h.publisher, h.logger, events.TopicBatchUploaded, events.BatchUploaded{
		BatchID:    newBatch.ID().String(),
		ClientID:   newBatch.ClientID(),
		TotalItems: newBatch.TotalItems(),
		UploadedAt: newBatch.UploadedAt(),
	})

	return newBatch, nil
}
