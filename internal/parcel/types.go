package parcel

import "fmt"

// Stage is the lifecycle position of a parcel on a cluster.
type Stage string

// Stages reported by the control plane. Only AVAILABLE_REMOTELY, DOWNLOADED,
// DISTRIBUTED and ACTIVATED are targets of an upgrade; the others are observed
// while a transition is in flight.
const (
	StageAvailableRemotely Stage = "AVAILABLE_REMOTELY"
	StageDownloading       Stage = "DOWNLOADING"
	StageDownloaded        Stage = "DOWNLOADED"
	StageDistributing      Stage = "DISTRIBUTING"
	StageDistributed       Stage = "DISTRIBUTED"
	StageUndistributing    Stage = "UNDISTRIBUTING"
	StageActivating        Stage = "ACTIVATING"
	StageActivated         Stage = "ACTIVATED"
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	return string(s)
}

// State is the transient status of a parcel.
type State struct {
	Progress      int64    `json:"progress"`
	TotalProgress int64    `json:"totalProgress"`
	Count         int64    `json:"count"`
	TotalCount    int64    `json:"totalCount"`
	Errors        []string `json:"errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// HasErrors reports whether the control plane attached errors to the parcel.
func (s State) HasErrors() bool {
	return len(s.Errors) > 0
}

// Parcel is a snapshot of one parcel as reported by the control plane.
type Parcel struct {
	Product string `json:"product"`
	Version string `json:"version"`
	Stage   Stage  `json:"stage"`
	State   State  `json:"state"`
}

// ID returns the product-version identity, e.g. "KUDU-1.4.0-1.cdh5.12.0.p0.814".
func (p Parcel) ID() string {
	return fmt.Sprintf("%s-%s", p.Product, p.Version)
}

// Cluster identifies a cluster managed by the control plane.
type Cluster struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Version     string `json:"version,omitempty"`
	FullVersion string `json:"fullVersion,omitempty"`
}

// Label returns the display name, falling back to the API name.
func (c Cluster) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
