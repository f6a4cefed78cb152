package cluster

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/platform/cm"
	"github.com/imamik/parcelup/internal/provisioning"
)

var (
	// ErrNoClusters means the control plane manages no cluster at all.
	ErrNoClusters = errors.New("no clusters found")

	// ErrAmbiguousCluster means no cluster was named and more than one exists.
	ErrAmbiguousCluster = errors.New("more than one cluster found")
)

// FindCluster returns the cluster called name, or the only cluster when name
// is empty.
func FindCluster(ctx context.Context, client cm.ClusterManager, name string) (parcel.Cluster, error) {
	if name != "" {
		c, err := client.GetCluster(ctx, name)
		if err != nil {
			return parcel.Cluster{}, err
		}
		if c.Name == "" {
			c.Name = name
		}
		return c, nil
	}

	clusters, err := client.GetAllClusters(ctx)
	if err != nil {
		return parcel.Cluster{}, err
	}

	switch len(clusters) {
	case 0:
		return parcel.Cluster{}, fmt.Errorf("%w; create one before running an upgrade", ErrNoClusters)
	case 1:
		return clusters[0], nil
	default:
		return parcel.Cluster{}, fmt.Errorf("%w (%d); specify which cluster to use with --cluster",
			ErrAmbiguousCluster, len(clusters))
	}
}

// Provisioner is the phase that resolves the cluster and stores it in the
// shared state.
type Provisioner struct{}

// NewProvisioner creates a cluster resolution phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name returns the phase name.
func (p *Provisioner) Name() string {
	return "resolve-cluster"
}

// Provision resolves the configured cluster. Later events carry the cluster name.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	c, err := FindCluster(ctx, ctx.Client, ctx.Config.Cluster)
	if err != nil {
		return err
	}

	if ctx.Config.Cluster == "" {
		ctx.Observer.Printf("Found cluster: %s", c.Label())
	}

	ctx.State.Cluster = c
	ctx.Observer = ctx.Observer.WithFields(map[string]string{"cluster": c.Name})
	return nil
}
