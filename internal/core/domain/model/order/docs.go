// Package order provides the Order aggregate of the cafe: an order header owned by a
// customer login plus the line items attached to it.
//
// The package includes:
//   - Order: the aggregate root; owns the running total and the payment flag
//   - LineItem: one menu item attached to an order, tracked for preparation status
//   - ItemStatus: the closed NotStarted / Started / Finished enumeration
//   - ID: the allocated, never reused order number
//   - DomainEvent implementations recorded on every state change
//
// Key business rules:
//   - The total always equals the sum of the unit prices captured when items were attached
//   - Items can only be attached while the order is unpaid
//   - Attaching the same item name twice creates two independently tracked line items
//   - Item status is a free-form three-valued field; concurrent writers resolve by
//     last-writer-wins on the write timestamp
//   - Comments are accepted only while the order is unpaid and the item has not started
//
// Role checks are not part of the aggregate; see the domain services package.
package order
