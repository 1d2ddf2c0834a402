package space

import "github.com/sirupsen/logrus"

const (
	defaultPoolInitialSize = 1000
	defaultPoolIncrement   = 100
)

// ntreePool is an arena of node slots addressed by pointer and recycled on
// release, avoiding per-node new/delete churn during rebuilds. It is purely
// a performance feature; NTree's correctness does not depend on one being
// attached.
type ntreePool struct {
	initialSize int
	increment   int
	free        []*ntreeNode
	allocated   int
	log         *logrus.Entry
}

func newNTreePool(initialSize, increment int, log *logrus.Entry) *ntreePool {
	if initialSize <= 0 {
		initialSize = defaultPoolInitialSize
	}
	if increment <= 0 {
		increment = defaultPoolIncrement
	}
	p := &ntreePool{initialSize: initialSize, increment: increment, log: log}
	p.grow(initialSize)
	return p
}

func (p *ntreePool) grow(n int) {
	slab := make([]ntreeNode, n)
	for i := range slab {
		p.free = append(p.free, &slab[i])
	}
	p.allocated += n
	if p.log != nil {
		p.log.WithField("allocated", p.allocated).Debug("ntree pool grew")
	}
}

// Alloc returns a node slot initialized with the given placement, growing
// the pool by its increment if exhausted.
func (p *ntreePool) Alloc(parent *ntreeNode, level int, min, max Vector) *ntreeNode {
	if len(p.free) == 0 {
		p.grow(p.increment)
	}
	n := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	n.parent = parent
	n.level = level
	n.minPos = min
	n.maxPos = max
	n.children = nil
	n.proxies = nil
	n.lastChecked = nil
	return n
}

// Free returns a node slot to the pool for reuse.
func (p *ntreePool) Free(n *ntreeNode) {
	n.clear()
	n.parent = nil
	p.free = append(p.free, n)
}
