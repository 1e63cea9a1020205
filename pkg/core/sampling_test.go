package core

import (
	"math"
	"math/rand"
	"testing"
)

// sequenceSampler replays a fixed sequence of values, wrapping around
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() Vec2 {
	return NewVec2(s.Get1D(), s.Get1D())
}

func (s *sequenceSampler) Get3D() Vec3 {
	return NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

func TestRandomUnitVector_IsUnitLength(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit vector, got length %f for %v", v.Length(), v)
		}
		mean = mean.Add(v)
	}

	// Uniform on the sphere: the mean direction converges to the origin
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.03 {
		t.Errorf("Expected mean near zero for uniform sphere samples, got %v", mean)
	}
}

func TestSampleOnUnitSphere_Poles(t *testing.T) {
	tests := []struct {
		name     string
		sample   Vec2
		expected Vec3
	}{
		{"z=+1 at u=0", NewVec2(0, 0.3), NewVec3(0, 0, 1)},
		{"z=0, phi=0", NewVec2(0.5, 0), NewVec3(1, 0, 0)},
		{"z=0, phi=pi/2", NewVec2(0.5, 0.25), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleOnUnitSphere(tt.sample)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRandomInUnitSphere_RejectsOutside(t *testing.T) {
	// First triple maps to (1,1,1) (outside), second to (0,0,0)
	sampler := &sequenceSampler{values: []float64{1, 1, 1, 0.5, 0.5, 0.5}}
	got := RandomInUnitSphere(sampler)
	if got != (Vec3{}) {
		t.Errorf("Expected rejection to yield origin, got %v", got)
	}
	if sampler.next != 6 {
		t.Errorf("Expected 6 draws, got %d", sampler.next)
	}
}

func TestRandomInUnitSphere_BoundaryIsRejected(t *testing.T) {
	// (1, 0.5, 0.5) maps to (1, 0, 0): length² == 1 must be rejected
	sampler := &sequenceSampler{values: []float64{1, 0.5, 0.5, 0.75, 0.5, 0.5}}
	got := RandomInUnitSphere(sampler)
	if got != NewVec3(0.5, 0, 0) {
		t.Errorf("Expected boundary sample to be rejected, got %v", got)
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	for i := 0; i < 5000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Expected z = 0, got %v", p)
		}
		if p.LengthSquared() >= 1 {
			t.Fatalf("Expected point inside unit disk, got %v", p)
		}
	}
}

func TestRandomInRange(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		v := RandomInRange(sampler, 0.5, 1.0)
		if v < 0.5 || v >= 1.0 {
			t.Fatalf("Expected value in [0.5, 1), got %f", v)
		}
		vec := RandomVecInRange(sampler, -2, 2)
		for _, c := range []float64{vec.X, vec.Y, vec.Z} {
			if c < -2 || c >= 2 {
				t.Fatalf("Expected components in [-2, 2), got %v", vec)
			}
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical streams for identical seeds")
		}
	}
}
