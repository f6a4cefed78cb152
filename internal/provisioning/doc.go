// Package provisioning provides the shared types and phase runner for a
// parcel upgrade.
//
// # Subpackages
//
//   - cluster/: resolves the cluster to operate on
//   - selection/: picks the parcel to upgrade to
//   - upgrade/: drives the chosen parcel to ACTIVATED
//
// # Core Types
//
// Context carries configuration, the control plane client, state and observer.
// Phase defines an upgrade step with Name() and Provision() methods.
// State accumulates results from each phase (cluster, selection, reached stage).
package provisioning
