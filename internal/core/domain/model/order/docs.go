// Package order implements the Order aggregate of the storefront: a buyer's
// purchase request, its lines with prices captured at order time, and the
// status state machine that gates every mutation.
//
// The package includes:
//   - Order: the aggregate root (identity, owner, lines, derived total, status)
//   - Line: one catalog product, a quantity and the captured unit price
//   - LineRequest: a (productId, quantity) pair submitted by a buyer
//   - Status: Pending, Processing, Completed, Cancelled and their transitions
//   - Event: facts recorded by every mutation and drained into the outbox
//
// Key business rules:
//   - The total always equals the sum of captured unit price × quantity over the current lines
//   - Lines can only be replaced while the order is Pending
//   - Only the owning account can pay, and only a Pending order
//   - Cancel is accepted from any status
package order
