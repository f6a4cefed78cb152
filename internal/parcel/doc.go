// Package parcel defines the parcel and cluster records returned by the
// control plane and the rule that picks the parcel to upgrade to.
//
// A parcel is identified by product and version. Its stage and state are
// snapshots refreshed on every poll; nothing here is persisted.
//
// Version ordering is plain string ordering throughout. "1.4.9" sorts after
// "1.4.10", so builds are expected to share padding and suffix layout.
package parcel
