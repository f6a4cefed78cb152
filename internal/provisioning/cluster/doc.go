// Package cluster resolves the cluster an upgrade operates on.
package cluster
