package cm

import (
	"context"
	"time"

	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/parcel"
)

// ClusterManager is the part of the control plane API parcelup consumes.
type ClusterManager interface {
	GetAllClusters(ctx context.Context) ([]parcel.Cluster, error)
	// GetCluster looks a cluster up by name; unknown names yield an error
	// for which IsNotFound is true.
	GetCluster(ctx context.Context, name string) (parcel.Cluster, error)
	GetAllParcels(ctx context.Context, cluster string) ([]parcel.Parcel, error)
	GetParcel(ctx context.Context, cluster, product, version string) (parcel.Parcel, error)

	StartDownload(ctx context.Context, cluster, product, version string) (*Command, error)
	StartDistribution(ctx context.Context, cluster, product, version string) (*Command, error)
	Activate(ctx context.Context, cluster, product, version string) (*Command, error)
}

// Command is the control plane's record of an asynchronous command.
type Command struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
	Success       *bool  `json:"success,omitempty"`
	ResultMessage string `json:"resultMessage,omitempty"`
}

// RetryFunc is notified before a failed read is retried.
type RetryFunc func(path string, attempt int, err error, delay time.Duration)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets request and retry timings.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API root derived from the configuration.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithRetryNotify registers a callback for read retries.
func WithRetryNotify(fn RetryFunc) ClientOption {
	return func(c *Client) {
		c.onRetry = fn
	}
}
