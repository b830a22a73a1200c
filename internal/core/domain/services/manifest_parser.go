package services

import (
	"cargotrack/internal/core/domain/model/kernel"
)

// RawItemRecord is one row of an uploaded manifest before validation.
// Column extraction happens upstream at the service boundary; this service
// only cares about the contract the columns must satisfy.
type RawItemRecord struct {
	ApplicantName  string
	ApplicantPhone string
	ApplicantEmail string
	Address        string
	State          string
	LGA            string
}

// ParsedRecord is a manifest row that survived parsing, with its contact and
// address value objects already constructed.
type ParsedRecord struct {
	Contact kernel.Contact
	Address kernel.Address
}

// ManifestParser filters raw manifest records down to the ones eligible for
// ingestion. A record missing any required field is dropped during parsing,
// not ingestion; whether anything survived is the ingestion processor's call.
type ManifestParser struct{}

// NewManifestParser creates a manifest parser.
func NewManifestParser() ManifestParser {
	return ManifestParser{}
}

// Parse returns the records that carry a non-empty applicant name, phone,
// email, address, state, and LGA. Incomplete records are silently dropped;
// the second return value reports how many were dropped.
func (ManifestParser) Parse(records []RawItemRecord) ([]ParsedRecord, int) {
	parsed := make([]ParsedRecord, 0, len(records))
	dropped := 0

	for _, record := range records {
		contact, err := kernel.NewContact(record.ApplicantName, record.ApplicantPhone, record.ApplicantEmail)
		if err != nil {
			dropped++
			continue
		}

		address, err := kernel.NewAddress(record.Address, record.State, record.LGA)
		if err != nil {
			dropped++
			continue
		}

		parsed = append(parsed, ParsedRecord{Contact: contact, Address: address})
	}

	return parsed, dropped
}
