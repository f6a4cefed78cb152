package testing

import (
	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/parcel"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder starting from the defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: *config.Default()}
}

// WithHost sets the control plane host.
func (b *ConfigBuilder) WithHost(host string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Host = host
	return nb
}

// WithTLS sets TLS and the matching port.
func (b *ConfigBuilder) WithTLS(port int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.TLS = true
	nb.cfg.Port = port
	return nb
}

// WithCredentials sets user and password.
func (b *ConfigBuilder) WithCredentials(user, password string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.User = user
	nb.cfg.Password = password
	return nb
}

// WithCluster sets the cluster name.
func (b *ConfigBuilder) WithCluster(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Cluster = name
	return nb
}

// WithProduct sets the parcel product.
func (b *ConfigBuilder) WithProduct(product string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Product = product
	return nb
}

// WithMaxTimePerStage sets the per-stage budget in seconds.
func (b *ConfigBuilder) WithMaxTimePerStage(seconds int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.MaxTimePerStage = seconds
	return nb
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: b.cfg}
}

// Parcel returns a parcel snapshot of product at version in stage.
func Parcel(product, version string, stage parcel.Stage) parcel.Parcel {
	return parcel.Parcel{Product: product, Version: version, Stage: stage}
}

// Kudu returns a KUDU parcel snapshot.
func Kudu(version string, stage parcel.Stage) parcel.Parcel {
	return Parcel(config.DefaultProduct, version, stage)
}

// WithProgress returns p with transfer progress set.
func WithProgress(p parcel.Parcel, progress, total int64) parcel.Parcel {
	p.State.Progress = progress
	p.State.TotalProgress = total
	return p
}

// WithErrors returns p with state errors attached.
func WithErrors(p parcel.Parcel, errs ...string) parcel.Parcel {
	p.State.Errors = errs
	return p
}

// InStage returns p moved to stage, keeping its identity.
func InStage(p parcel.Parcel, stage parcel.Stage) parcel.Parcel {
	p.Stage = stage
	p.State = parcel.State{}
	return p
}
