package provisioning

import (
	"context"

	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/metrics"
	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/platform/cm"
)

// State holds the shared results of upgrade phases.
// It is populated as each phase completes and read by the phases after it.
type State struct {
	// Cluster is set by the cluster resolution phase.
	Cluster parcel.Cluster

	// Selection is set by the selection phase.
	Selection *parcel.Selection

	// Reached is the last stage the candidate was confirmed at.
	Reached parcel.Stage
}

// NewState creates an empty state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for an upgrade phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Client   cm.ClusterManager
	Observer Observer
	Timeouts *config.Timeouts
	Metrics  *metrics.Recorder
}

// NewContext creates a new context logging to the console.
func NewContext(ctx context.Context, cfg *config.Config, client cm.ClusterManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Client:   client,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
