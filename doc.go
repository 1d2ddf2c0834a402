// Package space implements a multi-algorithm spatial neighborhood engine.
//
// Client code registers SpaceObjects carrying an N-dimensional position into
// one or more named Spaces. Each Space is backed by a pluggable
// SpaceAlgorithm (permanent links, an n-tree, a k-d tree, an approximate
// nearest-neighbor tree, an r-tree over shape bounding boxes, or a dense
// grid) that rebuilds its structure and recomputes neighbor lists on every
// Space.Update call. Neighbor admission — radius, cap, and
// replace-farther-neighbor semantics — is enforced uniformly by
// AdmissionPolicy regardless of which algorithm discovered the candidate.
package space
