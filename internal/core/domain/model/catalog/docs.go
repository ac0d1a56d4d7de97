// Package catalog holds the read-only view of sellable products that the order
// core consumes. The catalog itself (products, categories, their CRUD) lives
// outside this service; Item is the snapshot returned by a catalog lookup.
package catalog
