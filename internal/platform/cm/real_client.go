package cm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/parcel"
	"github.com/imamik/parcelup/internal/util/retry"
)

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ClusterManager over the REST API.
type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient HTTPDoer
	timeouts   *config.Timeouts
	onRetry    RetryFunc
}

var _ ClusterManager = (*Client)(nil)

// NewClient creates a client for the control plane described by cfg.
func NewClient(cfg *config.Config, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL(),
		user:       cfg.User,
		password:   cfg.Password,
		httpClient: http.DefaultClient,
		timeouts:   config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type clusterList struct {
	Items []parcel.Cluster `json:"items"`
}

type parcelList struct {
	Items []parcel.Parcel `json:"items"`
}

// GetAllClusters lists every cluster managed by the control plane.
func (c *Client) GetAllClusters(ctx context.Context) ([]parcel.Cluster, error) {
	var out clusterList
	if err := c.get(ctx, "/clusters", &out); err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	return out.Items, nil
}

// GetCluster fetches one cluster by name.
func (c *Client) GetCluster(ctx context.Context, name string) (parcel.Cluster, error) {
	var out parcel.Cluster
	if err := c.get(ctx, clusterPath(name), &out); err != nil {
		return parcel.Cluster{}, fmt.Errorf("get cluster %q: %w", name, err)
	}
	return out, nil
}

// GetAllParcels lists the parcels known to a cluster.
func (c *Client) GetAllParcels(ctx context.Context, cluster string) ([]parcel.Parcel, error) {
	var out parcelList
	if err := c.get(ctx, clusterPath(cluster)+"/parcels", &out); err != nil {
		return nil, fmt.Errorf("list parcels of cluster %q: %w", cluster, err)
	}
	return out.Items, nil
}

// GetParcel fetches the current stage and state of one parcel.
func (c *Client) GetParcel(ctx context.Context, cluster, product, version string) (parcel.Parcel, error) {
	var out parcel.Parcel
	if err := c.get(ctx, parcelPath(cluster, product, version), &out); err != nil {
		return parcel.Parcel{}, fmt.Errorf("get parcel %s-%s: %w", product, version, err)
	}
	return out, nil
}

// StartDownload asks the control plane to download a parcel from its repository.
func (c *Client) StartDownload(ctx context.Context, cluster, product, version string) (*Command, error) {
	return c.command(ctx, cluster, product, version, "startDownload")
}

// StartDistribution asks the control plane to push a downloaded parcel to all hosts.
func (c *Client) StartDistribution(ctx context.Context, cluster, product, version string) (*Command, error) {
	return c.command(ctx, cluster, product, version, "startDistribution")
}

// Activate makes a distributed parcel the active one for its product.
func (c *Client) Activate(ctx context.Context, cluster, product, version string) (*Command, error) {
	return c.command(ctx, cluster, product, version, "activate")
}

func (c *Client) command(ctx context.Context, cluster, product, version, name string) (*Command, error) {
	var out Command
	path := parcelPath(cluster, product, version) + "/commands/" + name
	if err := c.do(ctx, http.MethodPost, path, &out); err != nil {
		return nil, fmt.Errorf("%s parcel %s-%s: %w", name, product, version, err)
	}
	return &out, nil
}

func clusterPath(cluster string) string {
	return "/clusters/" + url.PathEscape(cluster)
}

func parcelPath(cluster, product, version string) string {
	return fmt.Sprintf("%s/parcels/products/%s/versions/%s",
		clusterPath(cluster), url.PathEscape(product), url.PathEscape(version))
}

// get performs a GET, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		err := c.do(ctx, http.MethodGet, path, out)
		if err != nil && (!isTransient(err) || ctx.Err() != nil) {
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			if c.onRetry != nil {
				c.onRetry(path, attempt, err, delay)
			}
		}))
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	if c.timeouts.Request > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeouts.Request)
		defer cancel()
	}

	var body io.Reader
	if method == http.MethodPost {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w (status %d)", err, resp.StatusCode)
	}
	return nil
}
