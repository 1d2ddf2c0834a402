package space

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// spaceState tracks whether a space is empty, holds objects, or is mid-tick;
// AddObject/RemoveObject reject calls made from inside Update.
type spaceState int

const (
	stateEmpty spaceState = iota
	statePopulated
	stateUpdating
)

// Space is a named container of objects with one indexing algorithm and one
// dimension. It owns a set of proxies exclusively and orchestrates the
// classify/rebuild/recompute update cycle on each tick.
type Space struct {
	name      string
	dim       int
	algorithm SpaceAlgorithm
	proxies   []*SpaceProxy
	byObject  map[uint64]*SpaceProxy
	state     spaceState
	log       *logrus.Entry
}

// NewSpace creates a named space backed by the given algorithm.
func NewSpace(name string, algorithm SpaceAlgorithm, opts ...LogOption) *Space {
	o := newLogOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Space{
		name:      name,
		dim:       algorithm.Dim(),
		algorithm: algorithm,
		byObject:  make(map[uint64]*SpaceProxy),
		state:     stateEmpty,
		log:       o.log.WithField("space", name),
	}
}

// Name returns the space's name.
func (s *Space) Name() string { return s.name }

// Dim returns the space's fixed dimension.
func (s *Space) Dim() int { return s.dim }

// Algorithm returns the space's indexing algorithm.
func (s *Space) Algorithm() SpaceAlgorithm { return s.algorithm }

// Proxies returns every proxy currently owned by the space. The returned
// slice must not be mutated by the caller.
func (s *Space) Proxies() []*SpaceProxy { return s.proxies }

// AddObject admits object into the space, creating its proxy and neighbor
// group. policy may be nil to accept the admission-policy defaults.
func (s *Space) AddObject(object *SpaceObject, visible bool, policy *AdmissionPolicy) error {
	const op = "Space.AddObject"
	if s.state == stateUpdating {
		return capacityErr(op, "space is updating")
	}
	if object.Dim() != s.dim {
		return dimErr(op, s.dim, object.Dim())
	}
	if _, exists := s.byObject[object.id]; exists {
		return capacityErr(op, fmt.Sprintf("object %d already present in space %q", object.id, s.name))
	}

	proxy := newSpaceProxy(object, s, visible, policy)
	s.proxies = append(s.proxies, proxy)
	s.byObject[object.id] = proxy
	s.state = statePopulated
	s.log.WithField("object", object.id).Debug("object added")
	return nil
}

// RemoveObject detaches object's proxy from the space, releasing its
// neighbor group.
func (s *Space) RemoveObject(object *SpaceObject) error {
	const op = "Space.RemoveObject"
	if s.state == stateUpdating {
		return capacityErr(op, "space is updating")
	}
	proxy, ok := s.byObject[object.id]
	if !ok {
		return wrapLookup(op, "object", s.name, ErrObjectNotInSpace)
	}

	idx := -1
	for i, p := range s.proxies {
		if p == proxy {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.proxies = append(s.proxies[:idx], s.proxies[idx+1:]...)
	}
	delete(s.byObject, object.id)
	proxy.detach(s.name)

	if len(s.proxies) == 0 {
		s.state = stateEmpty
	}
	s.log.WithField("object", object.id).Debug("object removed")
	return nil
}

// Contains reports whether object currently has a proxy in this space.
func (s *Space) Contains(object *SpaceObject) bool {
	_, ok := s.byObject[object.id]
	return ok
}

// Update runs the three-phase tick described in classification,
// structure rebuild, and neighbor recomputation. Errors from any phase are
// wrapped with the space's name and the failing phase name before being
// returned.
func (s *Space) Update() error {
	s.state = stateUpdating
	defer func() {
		if len(s.proxies) == 0 {
			s.state = stateEmpty
		} else {
			s.state = statePopulated
		}
	}()

	header := s.algorithm.(headerAccessor)
	visible, capable, expMin, expMax, expanded := classifyObjects(s.proxies, header.header())
	if expanded {
		s.log.WithField("min", expMin).WithField("max", expMax).Debug("unbounded algorithm resizing")
		if err := s.algorithm.Resize(expMin, expMax); err != nil {
			return phaseErr(s.name, "classification", err)
		}
	}

	s.log.WithField("visible", len(visible)).Debug("structure phase")
	if err := s.algorithm.UpdateStructure(visible); err != nil {
		return phaseErr(s.name, "structure", err)
	}

	s.log.WithField("capable", len(capable)).Debug("neighbor phase")
	if err := s.algorithm.UpdateNeighbors(capable); err != nil {
		return phaseErr(s.name, "neighbor", err)
	}

	return nil
}

// headerAccessor lets Space reach an algorithm's shared {bounded, min, max,
// dim} header without widening the public SpaceAlgorithm interface with an
// internal-only method.
type headerAccessor interface {
	header() *algHeader
}

// String renders the space for debugging.
func (s *Space) String() string { return s.Info(0) }

// Info renders the space with the given propagation depth.
func (s *Space) Info(depth int) string {
	str := fmt.Sprintf("Space[name=%q dim=%d objects=%d algorithm=%T]", s.name, s.dim, len(s.proxies), s.algorithm)
	if depth == 0 {
		return str
	}
	str += "\n" + s.algorithm.Info(depth - 1)
	return str
}
