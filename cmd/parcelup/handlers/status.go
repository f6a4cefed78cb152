package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/provisioning/cluster"
)

// Output formats accepted by status --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// StatusOptions contains options for the status command.
type StatusOptions struct {
	Output string
}

// StatusReport is the status of one product's parcels on a cluster.
type StatusReport struct {
	Cluster   string         `json:"cluster"`
	Product   string         `json:"product"`
	Active    string         `json:"active,omitempty"`
	Candidate string         `json:"candidate,omitempty"`
	Note      string         `json:"note,omitempty"`
	Parcels   []ParcelStatus `json:"parcels"`
}

// ParcelStatus is one row of a StatusReport.
type ParcelStatus struct {
	Version       string   `json:"version"`
	Stage         string   `json:"stage"`
	Progress      int64    `json:"progress"`
	TotalProgress int64    `json:"totalProgress"`
	Errors        []string `json:"errors,omitempty"`
}

// Percent returns the transfer progress in percent, or -1 when unknown.
func (s ParcelStatus) Percent() int {
	if s.TotalProgress <= 0 {
		return -1
	}
	return int(s.Progress * 100 / s.TotalProgress)
}

// Status handles the status command. It lists the configured product's
// parcels on the resolved cluster and what an upgrade would pick.
func Status(ctx context.Context, global *GlobalOptions, opts StatusOptions) error {
	cfg, err := resolveConfig(global)
	if err != nil {
		return err
	}

	observer, err := newObserver(global.LogFormat)
	if err != nil {
		return err
	}

	client := newClient(cfg, loadTimeouts(), retryNotifier(observer))

	c, err := cluster.FindCluster(ctx, client, cfg.Cluster)
	if err != nil {
		return err
	}

	parcels, err := client.GetAllParcels(ctx, c.Name)
	if err != nil {
		return err
	}

	report := buildStatusReport(c, parcels, cfg.Product)

	switch opts.Output {
	case "", OutputTable:
		_, err = fmt.Fprint(stdout, renderStatus(report, isInteractiveTTY()))
		return err
	case OutputJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	case OutputYAML:
		data, err := sigsyaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", opts.Output, OutputTable, OutputJSON, OutputYAML)
	}
}

// buildStatusReport summarises the parcels of product, newest first.
func buildStatusReport(c parcel.Cluster, parcels []parcel.Parcel, product string) *StatusReport {
	report := &StatusReport{
		Cluster: c.Label(),
		Product: product,
		Parcels: []ParcelStatus{},
	}

	for _, p := range parcels {
		if p.Product != product {
			continue
		}
		report.Parcels = append(report.Parcels, ParcelStatus{
			Version:       p.Version,
			Stage:         p.Stage.String(),
			Progress:      p.State.Progress,
			TotalProgress: p.State.TotalProgress,
			Errors:        p.State.Errors,
		})
	}
	slices.SortFunc(report.Parcels, func(a, b ParcelStatus) int {
		return strings.Compare(b.Version, a.Version)
	})

	sel, err := parcel.SelectUpgradeCandidate(parcels, product)
	if err != nil {
		report.Note = err.Error()
		return report
	}
	report.Active = sel.Baseline.Version
	report.Candidate = sel.Candidate.Version
	return report
}
