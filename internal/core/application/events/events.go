// Package events defines the cross-service event contracts of the tracking
// core. Each event is an immutable JSON payload published to its own topic
// with at-least-once delivery and no ordering guarantee across partitions;
// consumers must tolerate replays.
package events

import "time"

// Topic names double as event kinds on the bus.
const (
	TopicBatchUploaded     = "batch-uploaded"
	TopicDeliveryAssigned  = "delivery-assigned"
	TopicItemStatusChanged = "item-status-changed"
)

// Topics lists every topic the tracking core publishes to, in the order the
// notification dispatcher subscribes to them.
func Topics() []string {
	return []string{TopicItemStatusChanged, TopicDeliveryAssigned, TopicBatchUploaded}
}

// BatchUploaded is published exactly once after a batch and its items commit.
type BatchUploaded struct {
	BatchID    string    `json:"batchId"`
	ClientID   string    `json:"clientId"`
	TotalItems int       `json:"totalItems"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DeliveryAssigned is published when an item is assigned to a rider.
type DeliveryAssigned struct {
	DeliveryID string    `json:"deliveryId"`
	ItemID     string    `json:"itemId"`
	RiderID    string    `json:"riderId"`
	AssignedAt time.Time `json:"assignedAt"`
}

// ItemStatusChanged is published on every successful item status mutation so
// downstream consumers can react without the lifecycle manager knowing them.
type ItemStatusChanged struct {
	ItemID    string    `json:"itemId"`
	Status    string    `json:"status"`
	RiderID   *string   `json:"riderId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Location  *string   `json:"location,omitempty"`
}
