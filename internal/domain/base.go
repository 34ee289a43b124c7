// Package domain holds the plain data types for every aggregate named in
// the data model: Principal, Company and its satellites, the product
// catalog and BOM edges, the four commercial document families and their
// line items, the note subsystem, and the sequence counter. Types carry no
// behavior beyond small derived-field helpers (IsOverdue, IsLate, ...) —
// validation lives in package validate, persistence in package repo,
// lifecycle rules in package documents.
package domain

import "time"

// Audited is embedded by every aggregate. It carries the opaque monotonic
// id and the audit columns stamped by the unit-of-work on every mutation:
// created_at/updated_at timestamps, created_by/updated_by principal
// references, and an is_active flag allowing deactivation without deletion.
type Audited struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy int64
	UpdatedBy int64
	IsActive  bool
}

// SoftDeletable is embedded by aggregates that declare the soft-delete
// capability.
type SoftDeletable struct {
	IsDeleted bool
}
