package space

import "math"

// Vector is a fixed-length N-dimensional coordinate, direction, or value.
//
// No third-party vector library in the example corpus supports an arbitrary
// compile-time-unknown dimension (mathgl only ships Vec2/Vec3/Vec4), so this
// is a thin stdlib-backed slice type, the same choice hupe1980-vecgo makes
// for its own float32 math in internal/math32.
type Vector []float64

// NewVector returns a zeroed vector of the given dimension.
func NewVector(dim int) Vector {
	return make(Vector, dim)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Dim returns the number of components in v.
func (v Vector) Dim() int {
	return len(v)
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// Length returns the Euclidean norm of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.SquaredLength())
}

// SquaredLength returns the squared Euclidean norm of v, avoiding the sqrt
// when only relative distance comparisons are needed.
func (v Vector) SquaredLength() float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	return sum
}

// Sum returns the signed sum of v's components, used by grid neighbor modes
// that weight by a field's net value rather than its magnitude.
func (v Vector) Sum() float64 {
	var sum float64
	for _, c := range v {
		sum += c
	}
	return sum
}

// Distance returns the Euclidean distance between v and o.
func (v Vector) Distance(o Vector) float64 {
	return v.Sub(o).Length()
}

// SquaredDistance returns the squared Euclidean distance between v and o.
func (v Vector) SquaredDistance(o Vector) float64 {
	var sum float64
	for i := range v {
		d := v[i] - o[i]
		sum += d * d
	}
	return sum
}

// Min returns the componentwise minimum of v and o.
func Min(v, o Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = math.Min(v[i], o[i])
	}
	return r
}

// Max returns the componentwise maximum of v and o.
func Max(v, o Vector) Vector {
	r := make(Vector, len(v))
	for i := range v {
		r[i] = math.Max(v[i], o[i])
	}
	return r
}

// InBounds reports whether v lies within [min, max], inclusive on both
// ends, matching the n-tree's node-containment rule.
func (v Vector) InBounds(min, max Vector) bool {
	for i := range v {
		if v[i] < min[i] || v[i] > max[i] {
			return false
		}
	}
	return true
}

// Equal reports whether v and o have identical components within tol.
func (v Vector) Equal(o Vector, tol float64) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-o[i]) > tol {
			return false
		}
	}
	return true
}
