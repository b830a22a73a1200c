// Package services provides domain services that operate across the tracking
// domain's aggregates. It implements logic that doesn't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - ManifestParser: filters raw manifest records down to ingestible ones
//   - IdentityGenerator: generates batch numbers, tracking numbers, and QR codes
package services
