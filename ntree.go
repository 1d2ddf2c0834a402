package space

import "github.com/sirupsen/logrus"

const (
	defaultNTreeMaxDepth       = 3
	defaultNTreeMinObjectCount = -1
)

// ntreeOptions collects the tunables a NewNTree caller can override.
type ntreeOptions struct {
	maxDepth       int
	minObjectCount int
	poolInitial    int
	poolIncrement  int
	usePool        bool
	log            *logrus.Entry
}

func newNTreeOptions() *ntreeOptions {
	return &ntreeOptions{
		maxDepth:       defaultNTreeMaxDepth,
		minObjectCount: defaultNTreeMinObjectCount,
		poolInitial:    defaultPoolInitialSize,
		poolIncrement:  defaultPoolIncrement,
		usePool:        true,
	}
}

// NTreeOption configures an NTree algorithm at construction time.
type NTreeOption func(*ntreeOptions)

// WithMaxDepth bounds how many times a cell may be subdivided. A negative
// value removes the limit.
func WithMaxDepth(depth int) NTreeOption {
	return func(o *ntreeOptions) { o.maxDepth = depth }
}

// WithMinObjectCount sets the proxy count at or below which a cell stops
// subdividing even if shallower than maxDepth. A negative value removes the
// limit, leaving "count <= 1" as the only other stopping rule.
func WithMinObjectCount(count int) NTreeOption {
	return func(o *ntreeOptions) { o.minObjectCount = count }
}

// WithNodePool sets the node pool's initial size and growth increment.
func WithNodePool(initial, increment int) NTreeOption {
	return func(o *ntreeOptions) { o.poolInitial = initial; o.poolIncrement = increment; o.usePool = true }
}

// WithoutNodePool disables pooling; nodes are allocated and released
// individually. Correctness is unaffected either way.
func WithoutNodePool() NTreeOption {
	return func(o *ntreeOptions) { o.usePool = false }
}

// WithNTreeLogger scopes the node pool's growth diagnostics to the given
// logrus entry. Without this, pool growth is never logged.
func WithNTreeLogger(entry *logrus.Entry) NTreeOption {
	return func(o *ntreeOptions) { o.log = entry }
}

// ntree is a recursive 2^D spatial partition over a bounded domain. Each
// internal node splits its cell at the per-axis midpoint into 2^dim
// children; a point ties between the lower and upper half of an axis
// resolves to the lower half, the first child in ascending index order
// whose cell contains it.
type ntree struct {
	dim      int
	minPos   Vector
	maxPos   Vector
	root     *ntreeNode
	opts     *ntreeOptions
	pool     *ntreePool
	children int
}

func newNTree(dim int, min, max Vector, opts *ntreeOptions) *ntree {
	t := &ntree{dim: dim, minPos: min, maxPos: max, opts: opts, children: 1 << dim}
	if opts.usePool {
		t.pool = newNTreePool(opts.poolInitial, opts.poolIncrement, opts.log)
	}
	return t
}

func (t *ntree) allocNode(parent *ntreeNode, level int, min, max Vector) *ntreeNode {
	if t.pool != nil {
		return t.pool.Alloc(parent, level, min, max)
	}
	return newNTreeNode(t.dim, parent, level, min, max)
}

func (t *ntree) freeNode(n *ntreeNode) {
	if t.pool != nil {
		t.pool.Free(n)
		return
	}
	n.clear()
}

// resize changes the domain bounds. The existing subdivision is invalid
// against the new bounds, so the tree is dropped and rebuilt from scratch
// on the next Update.
func (t *ntree) resize(min, max Vector) {
	t.minPos, t.maxPos = min, max
	if t.root != nil {
		t.releaseSubtree(t.root)
		t.root = nil
	}
}

func (t *ntree) releaseSubtree(n *ntreeNode) {
	for _, c := range n.children {
		t.releaseSubtree(c)
	}
	t.freeNode(n)
}

// update rebuilds the proxy assignment against the current domain bounds.
// If a root already exists, subtrees whose subdivision decision is
// unchanged keep their existing nodes; only cells that must gain or lose
// children are touched.
func (t *ntree) update(visible []*SpaceProxy) {
	if t.root == nil {
		t.root = t.allocNode(nil, 0, t.minPos, t.maxPos)
	}
	t.refresh(t.root, visible)
}

func (t *ntree) shouldSubdivide(level, count int) bool {
	if count <= 1 {
		return false
	}
	if t.opts.maxDepth >= 0 && level >= t.opts.maxDepth {
		return false
	}
	if t.opts.minObjectCount >= 0 && count <= t.opts.minObjectCount {
		return false
	}
	return true
}

func (t *ntree) refresh(node *ntreeNode, objects []*SpaceProxy) {
	// Drop the previous tick's search mark, which would otherwise make the
	// same source skip this node in its next search.
	node.lastChecked = nil
	if !t.shouldSubdivide(node.level, len(objects)) {
		if !node.IsLeaf() {
			for _, c := range node.children {
				t.releaseSubtree(c)
			}
			node.children = nil
		}
		node.proxies = objects
		return
	}
	if node.IsLeaf() {
		t.createChildren(node)
	}
	groups := t.partition(node, objects)
	node.proxies = nil
	for i, child := range node.children {
		t.refresh(child, groups[i])
	}
}

func (t *ntree) createChildren(node *ntreeNode) {
	mid := make(Vector, t.dim)
	for i := 0; i < t.dim; i++ {
		mid[i] = (node.minPos[i] + node.maxPos[i]) / 2
	}
	node.children = make([]*ntreeNode, t.children)
	for k := 0; k < t.children; k++ {
		childMin := make(Vector, t.dim)
		childMax := make(Vector, t.dim)
		for axis := 0; axis < t.dim; axis++ {
			if (k>>axis)&1 == 0 {
				childMin[axis], childMax[axis] = node.minPos[axis], mid[axis]
			} else {
				childMin[axis], childMax[axis] = mid[axis], node.maxPos[axis]
			}
		}
		node.children[k] = t.allocNode(node, node.level+1, childMin, childMax)
	}
}

// partition assigns each object to the first child (ascending index) whose
// cell contains its position.
func (t *ntree) partition(node *ntreeNode, objects []*SpaceProxy) [][]*SpaceProxy {
	groups := make([][]*SpaceProxy, len(node.children))
	for _, p := range objects {
		pos := p.Object().Position()
		for i, c := range node.children {
			if c.contains(pos) {
				groups[i] = append(groups[i], p)
				break
			}
		}
	}
	return groups
}

// findLeaf descends from node along the single child containing pos.
func (t *ntree) findLeaf(node *ntreeNode, pos Vector) *ntreeNode {
	for !node.IsLeaf() {
		matched := false
		for _, c := range node.children {
			if c.contains(pos) {
				node = c
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	return node
}

func (t *ntree) queryBox(p *SpaceProxy) (Vector, Vector) {
	radius := p.NeighborRadius()
	if radius < 0 {
		return t.minPos, t.maxPos
	}
	boxMin := make(Vector, t.dim)
	boxMax := make(Vector, t.dim)
	pos := p.Object().Position()
	for i := 0; i < t.dim; i++ {
		boxMin[i] = pos[i] - radius
		boxMax[i] = pos[i] + radius
	}
	return boxMin, boxMax
}
