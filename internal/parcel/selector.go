package parcel

import "fmt"

// Selection is the outcome of candidate selection.
type Selection struct {
	// Baseline is the activated parcel the upgrade starts from.
	Baseline Parcel
	// Candidate is the parcel to drive to ACTIVATED.
	Candidate Parcel
}

// SelectUpgradeCandidate picks the parcel of product to upgrade to.
//
// The baseline is the greatest activated version. A candidate must share the
// baseline's release triplet and sort after it; the greatest one wins. Parcels
// of other products are ignored.
func SelectUpgradeCandidate(parcels []Parcel, product string) (Selection, error) {
	var activated, candidates []Parcel
	for _, p := range parcels {
		if p.Product != product {
			continue
		}
		if p.Stage == StageActivated {
			activated = append(activated, p)
		} else {
			candidates = append(candidates, p)
		}
	}

	if len(activated) == 0 {
		return Selection{}, fmt.Errorf("no activated %s parcels found, activate one first and then upgrade: %w",
			product, ErrNoActivatedParcel)
	}

	base := greatest(activated)

	var eligible []Parcel
	for _, c := range candidates {
		same, err := SameRelease(c.Version, base.Version)
		if err != nil {
			return Selection{}, err
		}
		if same && c.Version > base.Version {
			eligible = append(eligible, c)
		}
	}

	if len(eligible) == 0 {
		return Selection{}, fmt.Errorf("parcel version %s: %w", base.ID(), ErrNoUpgradeCandidates)
	}

	return Selection{Baseline: base, Candidate: greatest(eligible)}, nil
}

// greatest returns the parcel with the lexicographically greatest version.
// The first one wins on ties. parcels must not be empty.
func greatest(parcels []Parcel) Parcel {
	best := parcels[0]
	for _, p := range parcels[1:] {
		if p.Version > best.Version {
			best = p
		}
	}
	return best
}
