package space

// searchNeighbors offers every resident proxy within p's query box to
// policy, visiting each node in the tree at most once for this proxy. It
// starts at the leaf containing p's own position rather than descending
// from the root, then ascends toward the root, pulling in sibling subtrees
// that overlap the query box and skipping the subtree it just came from.
// Ascent stops once the current node's cell fully contains the query box:
// anything further out has already been visited.
func (t *ntree) searchNeighbors(p *SpaceProxy, policy *AdmissionPolicy) {
	if t.root == nil {
		return
	}
	boxMin, boxMax := t.queryBox(p)
	source := p.Object()
	current := t.findLeaf(t.root, source.Position())
	var cameFrom *ntreeNode

	for {
		if policy.Full() {
			return
		}
		if current.IsLeaf() {
			offerResidents(current, source, policy)
		} else {
			for _, child := range current.children {
				if child == cameFrom || child.lastChecked == source {
					continue
				}
				if child.overlapsBox(boxMin, boxMax) {
					t.visitSubtree(child, source, boxMin, boxMax, policy)
				}
			}
		}
		current.lastChecked = source
		if current == t.root || current.containsBox(boxMin, boxMax) {
			return
		}
		cameFrom = current
		current = current.parent
	}
}

func (t *ntree) visitSubtree(node *ntreeNode, source *SpaceObject, boxMin, boxMax Vector, policy *AdmissionPolicy) {
	node.lastChecked = source
	if node.IsLeaf() {
		offerResidents(node, source, policy)
		return
	}
	for _, child := range node.children {
		if policy.Full() {
			return
		}
		if child.overlapsBox(boxMin, boxMax) {
			t.visitSubtree(child, source, boxMin, boxMax, policy)
		}
	}
}

func offerResidents(leaf *ntreeNode, source *SpaceObject, policy *AdmissionPolicy) {
	for _, resident := range leaf.proxies {
		if policy.Full() {
			return
		}
		policy.Offer(source, resident.Object())
	}
}
