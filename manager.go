package space

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SpaceManager is a named registry of spaces with batched update.
type SpaceManager struct {
	spaces    []*Space
	byName    map[string]*Space
	analyzers []namedAnalyzer
	log       *logrus.Entry
}

type namedAnalyzer struct {
	space string
	a     Analyzer
}

// NewSpaceManager returns an empty manager.
func NewSpaceManager(opts ...LogOption) *SpaceManager {
	o := newLogOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &SpaceManager{
		byName: make(map[string]*Space),
		log:    o.log.WithField("component", "space-manager"),
	}
}

// AddSpace registers a space under its own name. It returns a
// CapacityError if a space by that name is already registered.
func (m *SpaceManager) AddSpace(s *Space) error {
	const op = "SpaceManager.AddSpace"
	if _, exists := m.byName[s.name]; exists {
		return capacityErr(op, fmt.Sprintf("space %q already registered", s.name))
	}
	m.spaces = append(m.spaces, s)
	m.byName[s.name] = s
	m.log.WithField("space", s.name).Debug("space added")
	return nil
}

// RemoveSpace deregisters the named space.
func (m *SpaceManager) RemoveSpace(name string) error {
	const op = "SpaceManager.RemoveSpace"
	if _, ok := m.byName[name]; !ok {
		return wrapLookup(op, "space", name, ErrSpaceNotInManager)
	}
	delete(m.byName, name)
	for i, s := range m.spaces {
		if s.name == name {
			m.spaces = append(m.spaces[:i], m.spaces[i+1:]...)
			break
		}
	}
	m.log.WithField("space", name).Debug("space removed")
	return nil
}

// Contains reports whether a space by that name is registered.
func (m *SpaceManager) Contains(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// GetSpace returns the named space.
func (m *SpaceManager) GetSpace(name string) (*Space, error) {
	const op = "SpaceManager.GetSpace"
	s, ok := m.byName[name]
	if !ok {
		return nil, wrapLookup(op, "space", name, ErrSpaceNotInManager)
	}
	return s, nil
}

// AddObject forwards into the named space's AddObject.
func (m *SpaceManager) AddObject(spaceName string, object *SpaceObject, visible bool, policy *AdmissionPolicy) error {
	const op = "SpaceManager.AddObject"
	s, ok := m.byName[spaceName]
	if !ok {
		return wrapLookup(op, "space", spaceName, ErrSpaceNotInManager)
	}
	return s.AddObject(object, visible, policy)
}

// RemoveObject forwards into the named space's RemoveObject.
func (m *SpaceManager) RemoveObject(spaceName string, object *SpaceObject) error {
	const op = "SpaceManager.RemoveObject"
	s, ok := m.byName[spaceName]
	if !ok {
		return wrapLookup(op, "space", spaceName, ErrSpaceNotInManager)
	}
	return s.RemoveObject(object)
}

// UpdateAll invokes Space.Update on every registered space in registration
// order, annotating any raised error with the failing space's name.
func (m *SpaceManager) UpdateAll() error {
	for _, s := range m.spaces {
		if err := s.Update(); err != nil {
			return managerErr(s.name, err)
		}
	}
	return nil
}

// AddAnalyzer registers an analyzer to run against the named space on every
// RunAnalyzers call. A space may have any number of analyzers attached.
func (m *SpaceManager) AddAnalyzer(spaceName string, a Analyzer) error {
	const op = "SpaceManager.AddAnalyzer"
	if _, ok := m.byName[spaceName]; !ok {
		return wrapLookup(op, "space", spaceName, ErrSpaceNotInManager)
	}
	m.analyzers = append(m.analyzers, namedAnalyzer{space: spaceName, a: a})
	return nil
}

// RunAnalyzers runs every registered analyzer against its space, in
// registration order, stopping and returning on the first error.
func (m *SpaceManager) RunAnalyzers() error {
	for _, na := range m.analyzers {
		s, ok := m.byName[na.space]
		if !ok {
			continue
		}
		if err := na.a.Analyze(s); err != nil {
			return managerErr(na.space, err)
		}
	}
	return nil
}

// String renders the manager for debugging.
func (m *SpaceManager) String() string { return m.Info(0) }

// Info renders the manager with the given propagation depth.
func (m *SpaceManager) Info(depth int) string {
	str := fmt.Sprintf("SpaceManager[spaces=%d]", len(m.spaces))
	if depth == 0 {
		return str
	}
	for _, s := range m.spaces {
		str += "\n" + s.Info(depth-1)
	}
	return str
}
