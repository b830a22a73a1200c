// Package kernel contains the shared value objects of the tracking domain:
// identifiers, applicant contact details, and delivery addresses. All types in
// this package are immutable and validated at construction, so the aggregates
// built on top of them never have to re-check their parts.
package kernel
