// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - MockClusterManager: testify mock of the control plane client
//   - CMFixture: Pre-configured mock control plane for common scenarios
//   - RecordingObserver: Observer that keeps every message for assertions
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithCluster("cluster").
//	    WithMaxTimePerStage(5).
//	    Build()
//
//	client := testing.NewCMFixture().SingleCluster(cluster, parcels...)
package testing
