// Package selection picks the parcel an upgrade drives to ACTIVATED.
package selection

import (
	"errors"
	"fmt"

	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/provisioning"
)

// Provisioner is the phase that selects the upgrade candidate among the
// parcels of the resolved cluster.
type Provisioner struct{}

// NewProvisioner creates a selection phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return "select-parcel"
}

// Provision lists the cluster's parcels and stores the selection in the state.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cluster := ctx.State.Cluster.Name
	if cluster == "" {
		return errors.New("cluster not resolved")
	}

	parcels, err := ctx.Client.GetAllParcels(ctx, cluster)
	if err != nil {
		return err
	}

	sel, err := parcel.SelectUpgradeCandidate(parcels, ctx.Config.Product)
	if err != nil {
		return fmt.Errorf("cluster %s: %w", cluster, err)
	}

	ctx.Observer.Printf("Chose the new parcel %s (Stage: %s).", sel.Candidate.ID(), sel.Candidate.Stage)
	ctx.State.Selection = &sel
	return nil
}
