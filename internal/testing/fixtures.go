package testing

import (
	"github.com/stretchr/testify/mock"

	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/platform/cm"
)

// CMFixture provides a pre-configured mock control plane for common test scenarios.
type CMFixture struct {
	mock *MockClusterManager
}

// NewCMFixture creates a new control plane fixture.
func NewCMFixture() *CMFixture {
	return &CMFixture{mock: &MockClusterManager{}}
}

// Mock returns the underlying mock for custom expectations.
func (f *CMFixture) Mock() *MockClusterManager {
	return f.mock
}

// SingleCluster configures a control plane managing only cluster, which
// holds parcels. Returns the same mock for chaining.
func (f *CMFixture) SingleCluster(cluster parcel.Cluster, parcels ...parcel.Parcel) *MockClusterManager {
	f.mock.On("GetAllClusters", mock.Anything).Return([]parcel.Cluster{cluster}, nil)
	f.mock.On("GetCluster", mock.Anything, cluster.Name).Return(cluster, nil)
	f.mock.On("GetAllParcels", mock.Anything, cluster.Name).Return(parcels, nil)
	return f.mock
}

// AcceptCommands makes every stage action succeed.
func (f *CMFixture) AcceptCommands() *MockClusterManager {
	for i, name := range []string{"StartDownload", "StartDistribution", "Activate"} {
		f.mock.On(name, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&cm.Command{ID: int64(i + 1), Name: name, Active: true}, nil).Maybe()
	}
	return f.mock
}

// PollSequence makes successive GetParcel calls for p return snapshots in
// order, repeating the last one forever.
func (f *CMFixture) PollSequence(cluster string, snapshots ...parcel.Parcel) *MockClusterManager {
	if len(snapshots) == 0 {
		return f.mock
	}
	p := snapshots[0]
	for _, s := range snapshots[:len(snapshots)-1] {
		f.mock.On("GetParcel", mock.Anything, cluster, p.Product, p.Version).Return(s, nil).Once()
	}
	f.mock.On("GetParcel", mock.Anything, cluster, p.Product, p.Version).Return(snapshots[len(snapshots)-1], nil)
	return f.mock
}
