package space

// SpaceProxy is the container-side handle for an object inside a space. It
// owns the object's neighbor group for that space and exposes the object's
// position and admission policy by delegation. Every space holds exactly
// one proxy per contained object.
type SpaceProxy struct {
	object *SpaceObject
	group  *NeighborGroup
}

func newSpaceProxy(object *SpaceObject, space *Space, visible bool, policy *AdmissionPolicy) *SpaceProxy {
	group := newNeighborGroup(object, space, visible, policy)
	object.registry.set(space.name, group)
	return &SpaceProxy{object: object, group: group}
}

// Object returns the proxy's underlying object.
func (p *SpaceProxy) Object() *SpaceObject { return p.object }

// Group returns the proxy's owned neighbor group.
func (p *SpaceProxy) Group() *NeighborGroup { return p.group }

// Position delegates to the underlying object's position.
func (p *SpaceProxy) Position() Vector { return p.object.position }

// Policy delegates to the proxy's neighbor group's admission policy.
func (p *SpaceProxy) Policy() *AdmissionPolicy { return p.group.policy }

// Visible delegates to the proxy's neighbor group's visibility flag.
func (p *SpaceProxy) Visible() bool { return p.group.visible }

// NeighborRadius returns the proxy's configured search radius, used by
// every algorithm to size its query region.
func (p *SpaceProxy) NeighborRadius() float64 { return p.group.policy.radius }

// detach releases the proxy's neighbor group, called when the owning space
// destroys the proxy.
func (p *SpaceProxy) detach(spaceName string) {
	p.object.registry.remove(spaceName)
	p.group = nil
}
