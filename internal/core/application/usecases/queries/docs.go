// Package queries contains read operations. Queries never change state and run
// outside a unit of work, against committed data only.
package queries
