// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read from the database directly with raw SQL, bypassing the
// aggregate repositories, and return flat response structs shaped for the
// transport layer.
package queries

import (
	"database/sql"
	"strings"
	"time"

	"cargotrack/internal/core/domain/model/item"
	"cargotrack/internal/core/domain/model/kernel"
	"cargotrack/internal/pkg/paging"

	"github.com/google/uuid"
)

// ItemView is the read-side projection of one tracked item.
type ItemView struct {
	ID                   kernel.UUID
	BatchID              kernel.UUID
	ItemNumber           string
	QRCode               string
	ApplicantName        string
	ApplicantPhone       string
	ApplicantEmail       string
	Address              string
	State                string
	LGA                  string
	Status               string
	RiderID              *string
	HubID                *string
	CreatedAt            time.Time
	DispatchedAt         *time.Time
	DeliveredAt          *time.Time
	EstimatedDeliveredAt *time.Time
}

// itemColumns is the select list scanItemRow expects, in scan order.
const itemColumns = `
	id,
	batch_id,
	item_number,
	qr_code,
	applicant_name,
	applicant_phone,
	applicant_email,
	address,
	state,
	lga,
	status,
	rider_id,
	hub_id,
	created_at,
	dispatched_at,
	delivered_at,
	estimated_delivered_at`

func scanItemRow(rows *sql.Rows) (ItemView, error) {
	var view ItemView
	var id, batchID uuid.UUID
	var status int

	err := rows.Scan(
		&id,
		&batchID,
		&view.ItemNumber,
		&view.QRCode,
		&view.ApplicantName,
		&view.ApplicantPhone,
		&view.ApplicantEmail,
		&view.Address,
		&view.State,
		&view.LGA,
		&status,
		&view.RiderID,
		&view.HubID,
		&view.CreatedAt,
		&view.DispatchedAt,
		&view.DeliveredAt,
		&view.EstimatedDeliveredAt,
	)
	if err != nil {
		return ItemView{}, err
	}

	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ItemView{}, err
	}
	view.ID = itemID

	itemBatchID, err := kernel.UUIDFromBytes(batchID[:])
	if err != nil {
		return ItemView{}, err
	}
	view.BatchID = itemBatchID

	view.Status = item.Status(status).String()
	return view, nil
}

// itemComparators is the sort-key whitelist for item listings. A sort key
// outside this map leaves the collection unsorted.
func itemComparators() paging.Comparators[ItemView] {
	return paging.Comparators[ItemView]{
		"itemNumber": func(a, b ItemView) int { return strings.Compare(a.ItemNumber, b.ItemNumber) },
		"createdAt":  func(a, b ItemView) int { return a.CreatedAt.Compare(b.CreatedAt) },
		"status":     func(a, b ItemView) int { return strings.Compare(a.Status, b.Status) },
		"state":      func(a, b ItemView) int { return strings.Compare(a.State, b.State) },
	}
}
