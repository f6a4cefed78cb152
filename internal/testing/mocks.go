package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/platform/cm"
	"github.com/imamik/parcelup/internal/provisioning"
)

// MockClusterManager is a mock implementation of cm.ClusterManager.
type MockClusterManager struct {
	mock.Mock
}

var _ cm.ClusterManager = (*MockClusterManager)(nil)

// GetAllClusters returns the mocked cluster list.
func (m *MockClusterManager) GetAllClusters(ctx context.Context) ([]parcel.Cluster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]parcel.Cluster), args.Error(1)
}

// GetCluster returns the mocked cluster.
func (m *MockClusterManager) GetCluster(ctx context.Context, name string) (parcel.Cluster, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(parcel.Cluster), args.Error(1)
}

// GetAllParcels returns the mocked parcel list.
func (m *MockClusterManager) GetAllParcels(ctx context.Context, cluster string) ([]parcel.Parcel, error) {
	args := m.Called(ctx, cluster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]parcel.Parcel), args.Error(1)
}

// GetParcel returns the mocked parcel snapshot.
func (m *MockClusterManager) GetParcel(ctx context.Context, cluster, product, version string) (parcel.Parcel, error) {
	args := m.Called(ctx, cluster, product, version)
	return args.Get(0).(parcel.Parcel), args.Error(1)
}

// StartDownload records a download request.
func (m *MockClusterManager) StartDownload(ctx context.Context, cluster, product, version string) (*cm.Command, error) {
	return m.command(m.Called(ctx, cluster, product, version))
}

// StartDistribution records a distribution request.
func (m *MockClusterManager) StartDistribution(ctx context.Context, cluster, product, version string) (*cm.Command, error) {
	return m.command(m.Called(ctx, cluster, product, version))
}

// Activate records an activation request.
func (m *MockClusterManager) Activate(ctx context.Context, cluster, product, version string) (*cm.Command, error) {
	return m.command(m.Called(ctx, cluster, product, version))
}

func (m *MockClusterManager) command(args mock.Arguments) (*cm.Command, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cm.Command), args.Error(1)
}

// RecordingObserver implements provisioning.Observer and keeps everything it
// is given. It is safe for concurrent use.
type RecordingObserver struct {
	mu       sync.Mutex
	messages []string
	events   []provisioning.Event
	progress [][2]int64
	fields   map[string]string
}

// NewRecordingObserver creates an empty RecordingObserver.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{fields: make(map[string]string)}
}

// Printf records the formatted message.
func (o *RecordingObserver) Printf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, fmt.Sprintf(format, v...))
}

// Event records the event.
func (o *RecordingObserver) Event(event provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

// Progress records a progress report.
func (o *RecordingObserver) Progress(_ string, current, total int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress = append(o.progress, [2]int64{current, total})
}

// WithFields returns o itself so that derived observers record into the same log.
func (o *RecordingObserver) WithFields(fields map[string]string) provisioning.Observer {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k, v := range fields {
		o.fields[k] = v
	}
	return o
}

// Messages returns the recorded Printf messages.
func (o *RecordingObserver) Messages() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.messages...)
}

// Events returns the recorded events.
func (o *RecordingObserver) Events() []provisioning.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]provisioning.Event(nil), o.events...)
}

// EventsOfType returns the recorded events of type t.
func (o *RecordingObserver) EventsOfType(t provisioning.EventType) []provisioning.Event {
	var out []provisioning.Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ProgressReports returns progress reports as (current, total) pairs.
func (o *RecordingObserver) ProgressReports() [][2]int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([][2]int64(nil), o.progress...)
}

// Fields returns the context fields added through WithFields.
func (o *RecordingObserver) Fields() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make(map[string]string, len(o.fields))
	for k, v := range o.fields {
		out[k] = v
	}
	return out
}
