package artwork

import "sort"

// BaseGroup holds the assets sharing one base name within an artwork folder:
// at most one still and one motion asset.
type BaseGroup struct {
	Still  *Asset
	Motion *Asset
}

// Index groups parsed assets by artwork ID, then by base name. It is built
// in one pass over a listing and read-only afterwards.
type Index map[int]map[string]*BaseGroup

// BuildIndex accumulates assets into an Index. When a listing carries
// duplicate keys for the same (artwork, base name, extension) slot, the
// last one wins.
func BuildIndex(assets []Asset) Index {
	ix := make(Index)
	for i := range assets {
		ix.add(&assets[i])
	}
	return ix
}

func (ix Index) add(a *Asset) {
	groups, ok := ix[a.ArtworkID]
	if !ok {
		groups = make(map[string]*BaseGroup)
		ix[a.ArtworkID] = groups
	}

	grp, ok := groups[a.BaseName]
	if !ok {
		grp = &BaseGroup{}
		groups[a.BaseName] = grp
	}

	if a.IsMotion() {
		grp.Motion = a
	} else {
		grp.Still = a
	}
}

// ArtworkIDs returns the indexed artwork IDs in ascending order, giving runs
// a deterministic processing sequence.
func (ix Index) ArtworkIDs() []int {
	ids := make([]int, 0, len(ix))
	for id := range ix {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// BaseNames returns the base names of one artwork in lexicographic order.
func (ix Index) BaseNames(artworkID int) []string {
	groups := ix[artworkID]
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
