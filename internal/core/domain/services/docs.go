// Package services holds domain logic that needs more than one aggregate or an
// outside collaborator to run.
//
// LinePricer turns buyer line requests into priced order lines by resolving
// each product against the catalog and capturing its current unit price.
package services
