// Package kernel provides the value objects shared by every aggregate of the
// storefront domain:
//   - UUID: identifier for orders, accounts and outbox messages
//   - Money: a non-negative decimal amount used for captured prices and totals
//
// Both are immutable and must be created through their constructors; the zero
// value of each fails Validate.
package kernel
