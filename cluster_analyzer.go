package space

import "sync"

// Analyzer runs an offline pass over a space's current proxies, distinct
// from the per-tick Update cycle: it reads neighbor relations that Update
// already computed rather than recomputing them itself.
type Analyzer interface {
	Analyze(space *Space) error
}

// ClusterAnalyzer groups a space's objects into connected components of its
// neighbor graph: two objects land in the same cluster if one is reachable
// from the other by following neighbor relations in either direction.
type ClusterAnalyzer struct {
	mu       sync.Mutex
	clusters [][]uint64
}

// NewClusterAnalyzer returns an analyzer with no prior result.
func NewClusterAnalyzer() *ClusterAnalyzer {
	return &ClusterAnalyzer{}
}

// Analyze recomputes the clustering from space's current proxies and their
// neighbor relations. Only this method's own pass is serialized; it does
// not coordinate with the space's own Update.
func (a *ClusterAnalyzer) Analyze(space *Space) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	parent := make(map[uint64]uint64)
	var find func(id uint64) uint64
	find = func(id uint64) uint64 {
		root, ok := parent[id]
		if !ok {
			parent[id] = id
			return id
		}
		if root != id {
			root = find(root)
			parent[id] = root
		}
		return root
	}
	union := func(x, y uint64) {
		rx, ry := find(x), find(y)
		if rx != ry {
			parent[rx] = ry
		}
	}

	for _, p := range space.Proxies() {
		id := p.Object().ID()
		find(id)
		for _, rel := range p.Group().Relations() {
			union(id, rel.Target().ID())
		}
	}

	byRoot := make(map[uint64][]uint64)
	for id := range parent {
		root := find(id)
		byRoot[root] = append(byRoot[root], id)
	}

	clusters := make([][]uint64, 0, len(byRoot))
	for _, members := range byRoot {
		clusters = append(clusters, members)
	}
	a.clusters = clusters
	return nil
}

// Clusters returns the result of the most recent Analyze call, one slice of
// object IDs per connected component. The returned slice must not be
// mutated by the caller.
func (a *ClusterAnalyzer) Clusters() [][]uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clusters
}
