package delivery

import (
	"errors"
	"time"

	"cargotrack/internal/pkg/errs"
)

// ProofOfDelivery is the evidence captured when a delivery completes.
// GPS location and recipient name are required; signature and photo blobs are
// optional. A proof exists if and only if the delivery is in Delivered status.
type ProofOfDelivery struct {
	signature     []byte
	photo         []byte
	gpsLocation   string
	recipientName string
	capturedAt    time.Time
}

// NewProofOfDelivery validates and creates a ProofOfDelivery.
// The capture timestamp is stamped by the caller at completion time.
func NewProofOfDelivery(signature, photo []byte, gpsLocation, recipientName string, capturedAt time.Time) (ProofOfDelivery, error) {
	var err error
	if gpsLocation == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("gpsLocation"))
	}
	if recipientName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("recipientName"))
	}
	if capturedAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("capturedAt"))
	}
	if err != nil {
		return ProofOfDelivery{}, err
	}

	return ProofOfDelivery{
		signature:     signature,
		photo:         photo,
		gpsLocation:   gpsLocation,
		recipientName: recipientName,
		capturedAt:    capturedAt,
	}, nil
}

// Signature returns the optional signature blob, or nil.
func (p ProofOfDelivery) Signature() []byte {
	return p.signature
}

// Photo returns the optional photo blob, or nil.
func (p ProofOfDelivery) Photo() []byte {
	return p.photo
}

// GPSLocation returns the capture coordinates, e.g. "6.5244,3.3792".
func (p ProofOfDelivery) GPSLocation() string {
	return p.gpsLocation
}

// RecipientName returns the name of the person who received the item.
func (p ProofOfDelivery) RecipientName() string {
	return p.recipientName
}

// CapturedAt returns the capture timestamp.
func (p ProofOfDelivery) CapturedAt() time.Time {
	return p.capturedAt
}

// Validate checks the proof carries its required fields.
func (p ProofOfDelivery) Validate() error {
	if p.gpsLocation == "" || p.recipientName == "" || p.capturedAt.IsZero() {
		return errs.NewValueIsRequiredError("proof of delivery must be created via NewProofOfDelivery")
	}
	return nil
}
