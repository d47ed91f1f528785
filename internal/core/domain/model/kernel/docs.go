// Package kernel provides the value objects shared by the cafe domain model.
//
// The package includes:
//   - UUID: identity for line items and outbox messages
//   - Money: a non-negative decimal amount used for menu prices and order totals
//
// Both are immutable, validated on construction and safe for concurrent use.
// Their zero values are invalid and fail Validate.
package kernel
