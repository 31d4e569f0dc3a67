package netcmp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/netcmp/distance"
	"github.com/hupe1980/netcmp/internal/distcache"
)

const (
	// SignatureExt is the extension of graphlet signature files.
	SignatureExt = ".ndump2"
	// NetworkExt is the extension of LEDA network files.
	NetworkExt = ".gw"
)

// Entity is one network of a run.
type Entity struct {
	// Name is the signature key without its extension.
	Name string
	// SignatureKey is the store name of the .ndump2 file.
	SignatureKey string
	// NetworkKey is the store name of the .gw file.
	NetworkKey string
}

// Discover lists the entities of the store sorted by name.
//
// For metrics that read the network, every signature must have a network
// file with the same stem; otherwise a *MissingNetworkError is returned.
func (c *Comparer) Discover(ctx context.Context, metric distance.Metric) ([]Entity, error) {
	names, err := c.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	var entities []Entity
	for _, name := range names {
		if strings.HasPrefix(name, distcache.Root+"/") || !strings.HasSuffix(name, SignatureExt) {
			continue
		}
		stem := strings.TrimSuffix(name, SignatureExt)
		e := Entity{
			Name:         stem,
			SignatureKey: name,
			NetworkKey:   stem + NetworkExt,
		}
		if metric.NeedsNetwork() {
			if _, ok := present[e.NetworkKey]; !ok {
				return nil, &MissingNetworkError{Entity: e.Name, Key: e.NetworkKey}
			}
		}
		entities = append(entities, e)
	}

	if len(entities) == 0 {
		return nil, ErrNoEntities
	}
	slices.SortFunc(entities, func(a, b Entity) int { return strings.Compare(a.Name, b.Name) })
	return entities, nil
}

func entityNames(entities []Entity) []string {
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	return names
}
