package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/parcelup/internal/metrics"
	"github.com/imamik/parcelup/internal/provisioning"
	"github.com/imamik/parcelup/internal/provisioning/cluster"
	"github.com/imamik/parcelup/internal/provisioning/selection"
	"github.com/imamik/parcelup/internal/provisioning/upgrade"
)

// now is the clock used to stamp run metrics.
var now = time.Now

// UpgradeOptions contains options for the upgrade command.
type UpgradeOptions struct {
	DryRun      bool
	MetricsFile string
}

// Upgrade handles the upgrade command.
//
// It resolves the cluster, selects the newest compatible parcel and drives
// it to ACTIVATED:
// 1. Validate configuration
// 2. Resolve the cluster (named, or the only one)
// 3. Select the upgrade candidate
// 4. Download, distribute and activate, waiting for each stage
func Upgrade(ctx context.Context, global *GlobalOptions, opts UpgradeOptions) error {
	cfg, err := resolveConfig(global)
	if err != nil {
		return err
	}

	observer, err := newObserver(global.LogFormat)
	if err != nil {
		return err
	}

	if opts.DryRun {
		observer.Printf("[DRY RUN] No stage actions will be sent")
	}

	timeouts := loadTimeouts()
	client := newClient(cfg, timeouts, retryNotifier(observer))

	pCtx := provisioning.NewContext(ctx, cfg, client)
	pCtx.Observer = observer
	pCtx.Timeouts = timeouts
	if opts.MetricsFile != "" {
		pCtx.Metrics = metrics.NewRecorder()
	}

	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		cluster.NewProvisioner(),
		selection.NewProvisioner(),
		upgrade.NewProvisioner(upgrade.ProvisionerOptions{DryRun: opts.DryRun}),
	}

	runErr := provisioning.RunPhases(pCtx, phases)
	pCtx.Metrics.RecordRun(cfg.Product, runResult(runErr, opts.DryRun), now())

	if err := pCtx.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
		if runErr == nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		observer.Printf("Failed to write metrics to %s: %v", opts.MetricsFile, err)
	}

	if runErr != nil {
		return fmt.Errorf("upgrade failed: %w", runErr)
	}
	return nil
}

// runResult maps the outcome of a run to its metrics label.
func runResult(err error, dryRun bool) string {
	switch {
	case err == nil && dryRun:
		return metrics.ResultDryRun
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, upgrade.ErrStageTimeout):
		return metrics.ResultTimeout
	default:
		return metrics.ResultFailed
	}
}
