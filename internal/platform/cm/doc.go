// Package cm is a minimal client for the cluster manager REST API.
//
// It covers only what a parcel upgrade needs: listing clusters, reading
// parcels, and triggering the download, distribution and activation
// commands of one parcel. Requests use HTTP basic authentication against a
// versioned API root such as http://localhost:7180/api/v10.
//
// Reads are retried with exponential backoff on network errors, 429 and 5xx
// responses. Commands are sent once: a repeated activation request is not
// something the caller asked for.
package cm
