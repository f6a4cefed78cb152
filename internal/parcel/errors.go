package parcel

import "errors"

var (
	// ErrNoActivatedParcel means the product has no activated parcel to upgrade from.
	ErrNoActivatedParcel = errors.New("no activated parcel")

	// ErrMalformedVersion means a version does not start with MAJOR.MINOR.PATCH.
	ErrMalformedVersion = errors.New("malformed parcel version")

	// ErrNoUpgradeCandidates means no parcel shares the release of the activated
	// parcel while sorting after it.
	ErrNoUpgradeCandidates = errors.New("no upgrade candidates")
)
