package space

import "testing"

func TestAdmissionPolicyDecisionBranches(t *testing.T) {
	newGroupPolicy := func(opts ...PolicyOption) (*AdmissionPolicy, *NeighborGroup) {
		owner := NewSpaceObjectAt(Vector{0, 0, 0})
		policy := NewAdmissionPolicy(opts...)
		group := &NeighborGroup{object: owner, policy: policy}
		policy.setGroup(group)
		return policy, group
	}

	t.Run("branch1 cap zero always rejects", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(0), WithRadius(10))
		target := NewSpaceObjectAt(Vector{1, 0, 0})
		if policy.Offer(group.object, target) {
			t.Fatalf("cap 0 policy must never admit")
		}
		if len(group.relations) != 0 {
			t.Fatalf("expected no relations, got %d", len(group.relations))
		}
	})

	t.Run("branch2 outside radius rejects", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(5), WithRadius(1))
		target := NewSpaceObjectAt(Vector{10, 0, 0})
		if policy.Offer(group.object, target) {
			t.Fatalf("candidate outside radius must be rejected")
		}
	})

	t.Run("branch3 full without replace rejects closer candidate", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(1), WithRadius(10), WithReplaceFarther(false))
		first := NewSpaceObjectAt(Vector{5, 0, 0})
		if !policy.Offer(group.object, first) {
			t.Fatalf("first candidate should be admitted")
		}
		second := NewSpaceObjectAt(Vector{1, 0, 0})
		if policy.Offer(group.object, second) {
			t.Fatalf("full non-replacing policy must reject even a closer candidate")
		}
		if len(group.relations) != 1 || group.relations[0].target != first {
			t.Fatalf("expected first candidate to remain, got %v", group.relations)
		}
	})

	t.Run("branch4 full with replace rejects farther candidate", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(1), WithRadius(10), WithReplaceFarther(true))
		near := NewSpaceObjectAt(Vector{1, 0, 0})
		if !policy.Offer(group.object, near) {
			t.Fatalf("first candidate should be admitted")
		}
		farther := NewSpaceObjectAt(Vector{5, 0, 0})
		if policy.Offer(group.object, farther) {
			t.Fatalf("a farther candidate than the current worst must be rejected even with replace_farther")
		}
	})

	t.Run("branch5 replace evicts farthest and keeps cap", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(2), WithRadius(10), WithReplaceFarther(true))
		far := NewSpaceObjectAt(Vector{5, 0, 0})
		mid := NewSpaceObjectAt(Vector{3, 0, 0})
		policy.Offer(group.object, far)
		policy.Offer(group.object, mid)
		closer := NewSpaceObjectAt(Vector{1, 0, 0})
		if !policy.Offer(group.object, closer) {
			t.Fatalf("closer candidate should displace the farthest")
		}
		if len(group.relations) != 2 {
			t.Fatalf("cap must be respected, got %d relations", len(group.relations))
		}
		if group.relations[0].target != closer || group.relations[1].target != mid {
			t.Fatalf("unexpected ordering after replace: %v", group.relations)
		}
	})

	t.Run("self offer always rejected", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(5), WithRadius(10))
		if policy.Offer(group.object, group.object) {
			t.Fatalf("an object must never be its own neighbor")
		}
	})

	t.Run("unbounded cap accepts unlimited candidates", func(t *testing.T) {
		policy, group := newGroupPolicy(WithCap(-1), WithRadius(-1))
		for i := 0; i < 50; i++ {
			target := NewSpaceObjectAt(Vector{float64(i), 0, 0})
			if !policy.Offer(group.object, target) {
				t.Fatalf("unbounded policy must admit candidate %d", i)
			}
		}
		if len(group.relations) != 50 {
			t.Fatalf("expected 50 relations, got %d", len(group.relations))
		}
	})
}

func TestAdmissionPolicyFull(t *testing.T) {
	owner := NewSpaceObjectAt(Vector{0, 0, 0})
	policy := NewAdmissionPolicy(WithCap(2), WithReplaceFarther(false))
	group := &NeighborGroup{object: owner, policy: policy}
	policy.setGroup(group)

	if policy.Full() {
		t.Fatalf("empty group must not report full")
	}
	policy.Offer(owner, NewSpaceObjectAt(Vector{1, 0, 0}))
	policy.Offer(owner, NewSpaceObjectAt(Vector{2, 0, 0}))
	if !policy.Full() {
		t.Fatalf("group at cap without replace_farther must report full")
	}
}
