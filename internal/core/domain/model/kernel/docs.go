// Package kernel holds the value objects shared by every aggregate of the
// orders domain. Today that is the UUID identity type; order-specific values
// live next to the Order aggregate.
package kernel
