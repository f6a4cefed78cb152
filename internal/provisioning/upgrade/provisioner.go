package upgrade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/parcelup/internal/metrics"
	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/platform/cm"
	"github.com/imamik/parcelup/internal/provisioning"
	"github.com/imamik/parcelup/internal/util/retry"
)

const (
	phase = "Upgrade"

	defaultPollInterval = time.Second
)

// action starts the asynchronous command that moves a parcel to the next stage.
type action func(c cm.ClusterManager, ctx context.Context, cluster, product, version string) (*cm.Command, error)

// transition is one step of the parcel lifecycle.
type transition struct {
	from     parcel.Stage
	to       parcel.Stage
	starting string
	finished string
	start    action
}

// lifecycle lists the transitions in order. A parcel is moved through every
// transition from its observed stage onwards.
var lifecycle = []transition{
	{
		from:     parcel.StageAvailableRemotely,
		to:       parcel.StageDownloaded,
		starting: "Downloading",
		finished: "Downloaded",
		start:    cm.ClusterManager.StartDownload,
	},
	{
		from:     parcel.StageDownloaded,
		to:       parcel.StageDistributed,
		starting: "Distributing",
		finished: "Distributed",
		start:    cm.ClusterManager.StartDistribution,
	},
	{
		from:     parcel.StageDistributed,
		to:       parcel.StageActivated,
		starting: "Activating",
		finished: "Activated",
		start:    cm.ClusterManager.Activate,
	},
}

// ProvisionerOptions contains options for the upgrade provisioner.
type ProvisionerOptions struct {
	// DryRun reports the transitions that would be requested without
	// sending any action to the control plane.
	DryRun bool
}

// Provisioner drives the selected parcel to ACTIVATED.
type Provisioner struct {
	opts ProvisionerOptions
}

// NewProvisioner creates a new upgrade provisioner.
func NewProvisioner(opts ProvisionerOptions) *Provisioner {
	return &Provisioner{
		opts: opts,
	}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return "upgrade"
}

// Provision activates the parcel chosen by the selection phase.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	sel := ctx.State.Selection
	if sel == nil {
		return errors.New("no parcel selected")
	}

	ctx.Observer.Printf("[%s] Upgrading %s from %s on cluster %s",
		phase, sel.Candidate.ID(), sel.Baseline.Version, ctx.State.Cluster.Label())

	if err := p.EnsureActivated(ctx, sel.Candidate); err != nil {
		return err
	}

	switch {
	case p.opts.DryRun:
		ctx.Observer.Printf("[%s] [DRY RUN] No changes made", phase)
	case ctx.State.Reached == parcel.StageActivated:
		ctx.Observer.Printf("[%s] %s is activated. %s services must be restarted to use the new parcel.",
			phase, sel.Candidate.ID(), sel.Candidate.Product)
	default:
		ctx.Observer.Printf("[%s] %s is %s, nothing to resume; rerun once the transition has finished",
			phase, sel.Candidate.ID(), sel.Candidate.Stage)
	}
	return nil
}

// EnsureActivated moves target through every lifecycle transition starting
// at its observed stage. A parcel that is already ACTIVATED, or is observed
// mid-transition, is left alone.
func (p *Provisioner) EnsureActivated(ctx *provisioning.Context, target parcel.Parcel) error {
	stage := target.Stage
	if stage == parcel.StageActivated {
		ctx.Observer.Printf("[%s] Parcel %s is already activated", phase, target.ID())
		ctx.State.Reached = parcel.StageActivated
		return nil
	}

	for _, t := range lifecycle {
		if stage != t.from {
			continue
		}

		current := target
		current.Stage = stage
		if err := p.advance(ctx, current, t); err != nil {
			return err
		}
		stage = t.to
	}
	return nil
}

// advance requests transition t for target and waits for its stage.
func (p *Provisioner) advance(ctx *provisioning.Context, target parcel.Parcel, t transition) error {
	if p.opts.DryRun {
		ctx.Observer.Printf("[%s] [DRY RUN] Would request %s for parcel: %s", phase, t.to, target.ID())
		provisioning.LogStageSkipped(ctx.Observer, phase, target, t.to)
		ctx.Metrics.RecordTransition(target.Product, t.to, metrics.ResultDryRun, 0)
		return nil
	}

	ctx.Observer.Printf("%s parcel: %s", t.starting, target.ID())

	started := time.Now()
	if _, err := t.start(ctx.Client, ctx, ctx.State.Cluster.Name, target.Product, target.Version); err != nil {
		ctx.Metrics.RecordTransition(target.Product, t.to, metrics.ResultFailed, 0)
		return fmt.Errorf("failed to request %s for parcel %s: %w", t.to, target.ID(), err)
	}
	provisioning.LogStageRequested(ctx.Observer, phase, target, t.to)

	polls, err := p.waitForStage(ctx, target, t.to, ctx.Config.MaxTimePerStage)
	if err != nil {
		result := metrics.ResultFailed
		if errors.Is(err, ErrStageTimeout) {
			result = metrics.ResultTimeout
		}
		ctx.Metrics.RecordTransition(target.Product, t.to, result, 0)
		return err
	}

	elapsed := time.Since(started)
	ctx.Metrics.RecordTransition(target.Product, t.to, metrics.ResultSuccess, elapsed)
	provisioning.LogStageReached(ctx.Observer, phase, target, t.to, polls, elapsed)
	ctx.Observer.Printf("%s parcel: %s", t.finished, target.ID())
	ctx.State.Reached = t.to
	return nil
}

// WaitForStage polls target until it reaches stage, making at most
// maxAttempts polls one poll interval apart.
func (p *Provisioner) WaitForStage(ctx *provisioning.Context, target parcel.Parcel, stage parcel.Stage, maxAttempts int) error {
	_, err := p.waitForStage(ctx, target, stage, maxAttempts)
	return err
}

// waitForStage is WaitForStage that also returns the number of polls made.
func (p *Provisioner) waitForStage(ctx *provisioning.Context, target parcel.Parcel, stage parcel.Stage, maxAttempts int) (int, error) {
	polls := 0
	err := retry.Poll(ctx, maxAttempts, pollInterval(ctx), func(attempt int) (bool, error) {
		polls = attempt
		ctx.Metrics.RecordPoll(target.Product, stage)

		current, err := ctx.Client.GetParcel(ctx, ctx.State.Cluster.Name, target.Product, target.Version)
		if err != nil {
			return false, fmt.Errorf("failed to poll parcel %s: %w", target.ID(), err)
		}
		if current.Stage == stage {
			return true, nil
		}
		if current.State.HasErrors() {
			return false, &StageError{
				Product: target.Product,
				Version: target.Version,
				Stage:   stage,
				Errors:  current.State.Errors,
			}
		}

		ctx.Observer.Progress(phase, current.State.Progress, current.State.TotalProgress)
		return false, nil
	})

	if errors.Is(err, retry.ErrExhausted) {
		return polls, &StageTimeoutError{
			Product: target.Product,
			Version: target.Version,
			Stage:   stage,
			Budget:  maxAttempts,
		}
	}
	return polls, err
}

func pollInterval(ctx *provisioning.Context) time.Duration {
	if ctx.Timeouts == nil {
		return defaultPollInterval
	}
	return ctx.Timeouts.PollInterval
}
