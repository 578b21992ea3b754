// Package integration contains the Integration bounded context.
// It models synchronization of local records to the external NDU registry.
//
// Key concepts:
//   - Registry: port interface for the external registry
//   - Log: immutable record of one sync call and its final outcome
//
// Adapters for the registry live in the infrastructure layer.
package integration
