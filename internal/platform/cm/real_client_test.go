package cm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/parcelup/internal/config"
	"github.com/imamik/parcelup/internal/parcel"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.User = "ops"
	cfg.Password = "secret"

	return NewClient(cfg,
		WithBaseURL(srv.URL+"/api/v10"),
		WithHTTPClient(srv.Client()),
		WithTimeouts(&config.Timeouts{
			Request:           5 * time.Second,
			RetryMaxAttempts:  2,
			RetryInitialDelay: time.Millisecond,
		}))
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient(config.Default())

	assert.Equal(t, "http://localhost:7180/api/v10", c.baseURL)
	assert.Equal(t, "admin", c.user)
	assert.Equal(t, "admin", c.password)
	assert.NotNil(t, c.httpClient)
	assert.NotNil(t, c.timeouts)
}

func TestGetAllClusters(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v10/clusters", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ops", user)
		assert.Equal(t, "secret", pass)
		_, _ = w.Write([]byte(`{"items":[{"name":"cluster","displayName":"Cluster 1","version":"CDH5","fullVersion":"5.12.0"}]}`))
	})

	clusters, err := c.GetAllClusters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []parcel.Cluster{{
		Name: "cluster", DisplayName: "Cluster 1", Version: "CDH5", FullVersion: "5.12.0",
	}}, clusters)
}

func TestGetCluster_EscapesName(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v10/clusters/Cluster%201", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"name":"Cluster 1","displayName":"Cluster 1"}`))
	})

	cluster, err := c.GetCluster(context.Background(), "Cluster 1")
	require.NoError(t, err)
	assert.Equal(t, "Cluster 1", cluster.Name)
}

func TestGetCluster_NotFound(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Cluster 'nope' not found."}`))
	})

	_, err := c.GetCluster(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Cluster 'nope' not found.")
	assert.Equal(t, int32(1), calls.Load(), "4xx responses are not retried")
}

func TestGetAllParcels(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v10/clusters/cluster/parcels", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[
			{"product":"KUDU","version":"1.4.0-1.cdh5.12.0.p0.814","stage":"ACTIVATED","clusterRef":{"clusterName":"cluster"},
			 "state":{"progress":0,"totalProgress":0,"count":0,"totalCount":0,"errors":[],"warnings":[]}},
			{"product":"KUDU","version":"1.4.0-1.cdh5.12.0.p0.830","stage":"DOWNLOADING",
			 "state":{"progress":512,"totalProgress":1024,"count":0,"totalCount":0,"errors":[],"warnings":[]}}
		]}`))
	})

	parcels, err := c.GetAllParcels(context.Background(), "cluster")
	require.NoError(t, err)
	require.Len(t, parcels, 2)
	assert.Equal(t, parcel.StageActivated, parcels[0].Stage)
	assert.Equal(t, "1.4.0-1.cdh5.12.0.p0.830", parcels[1].Version)
	assert.Equal(t, parcel.StageDownloading, parcels[1].Stage)
	assert.Equal(t, int64(512), parcels[1].State.Progress)
	assert.Equal(t, int64(1024), parcels[1].State.TotalProgress)
	assert.False(t, parcels[1].State.HasErrors())
}

func TestGetParcel(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v10/clusters/cluster/parcels/products/KUDU/versions/1.4.0-1.cdh5.12.0.p0.830", r.URL.Path)
		_, _ = w.Write([]byte(`{"product":"KUDU","version":"1.4.0-1.cdh5.12.0.p0.830","stage":"DOWNLOADED",
			"state":{"progress":0,"totalProgress":0,"errors":["checksum mismatch"]}}`))
	})

	p, err := c.GetParcel(context.Background(), "cluster", "KUDU", "1.4.0-1.cdh5.12.0.p0.830")
	require.NoError(t, err)
	assert.Equal(t, parcel.StageDownloaded, p.Stage)
	assert.Equal(t, []string{"checksum mismatch"}, p.State.Errors)
}

func TestCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		suffix string
		call   func(*Client) (*Command, error)
	}{
		{
			name:   "download",
			suffix: "startDownload",
			call: func(c *Client) (*Command, error) {
				return c.StartDownload(context.Background(), "cluster", "KUDU", "1.4.0-p0.2")
			},
		},
		{
			name:   "distribution",
			suffix: "startDistribution",
			call: func(c *Client) (*Command, error) {
				return c.StartDistribution(context.Background(), "cluster", "KUDU", "1.4.0-p0.2")
			},
		},
		{
			name:   "activation",
			suffix: "activate",
			call: func(c *Client) (*Command, error) {
				return c.Activate(context.Background(), "cluster", "KUDU", "1.4.0-p0.2")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v10/clusters/cluster/parcels/products/KUDU/versions/1.4.0-p0.2/commands/"+tt.suffix, r.URL.Path)
				_, _ = w.Write([]byte(`{"id":42,"name":"` + tt.suffix + `","active":true}`))
			})

			cmd, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, int64(42), cmd.ID)
			assert.Equal(t, tt.suffix, cmd.Name)
			assert.True(t, cmd.Active)
		})
	}
}

func TestCommand_NotRetried(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Activate(context.Background(), "cluster", "KUDU", "1.4.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activate parcel KUDU-1.4.0")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_RetriesTransientFailures(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	var retried []int
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	c.onRetry = func(path string, attempt int, err error, _ time.Duration) {
		assert.Equal(t, "/clusters", path)
		retried = append(retried, attempt)
	}

	clusters, err := c.GetAllClusters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clusters)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []int{1}, retried)
}

func TestGet_GivesUpAfterRetries(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetAllClusters(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestGet_Unauthorized(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.GetAllClusters(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestGet_MalformedJSON(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"items":`))
	})

	_, err := c.GetAllClusters(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_ConnectionRefusedIsRetried(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(config.Default(),
		WithBaseURL(url+"/api/v10"),
		WithTimeouts(&config.Timeouts{Request: time.Second, RetryMaxAttempts: 1, RetryInitialDelay: time.Millisecond}))

	_, err := c.GetAllClusters(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 attempts")
}
