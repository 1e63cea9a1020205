package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// exitingHit returns a ray travelling at sinθ to the normal (0,1,0) and a
// back-face hit record, as seen from inside a glass object
func exitingHit(sinTheta float64) (core.Ray, HitRecord) {
	cosTheta := math.Sqrt(1 - sinTheta*sinTheta)
	ray := core.NewRay(core.NewPoint3(0, 1, 0), core.NewVec3(sinTheta, -cosTheta, 0))
	hit := HitRecord{
		Point:     core.NewPoint3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
	}
	return ray, hit
}

func TestDielectricBasicBehavior(t *testing.T) {
	glass := NewDielectric(1.5)

	ray := core.NewRay(core.NewPoint3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:     core.NewPoint3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	hasReflection := false
	hasRefraction := false

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 2000; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.White {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}

		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	// At 45° air->glass the Schlick reflectance is about 5%
	if !hasRefraction || !hasReflection {
		t.Errorf("Expected both outcomes, reflection=%t refraction=%t", hasReflection, hasRefraction)
	}
}

func TestDielectric_RefractionBendsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewPoint3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{
		Point:     core.NewPoint3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	// A draw of 0.99 exceeds the reflectance, so the ray refracts
	result, _ := glass.Scatter(ray, hit, &scriptedSampler{values: []float64{0.99}})
	dir := result.Scattered.Direction.Normalize()

	sinIn := math.Sqrt(0.5)
	sinOut := math.Abs(dir.X)
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Expected sin(out) = %f, got %f", sinIn/1.5, sinOut)
	}
}

func TestDielectricTotalInternalReflectionBoundary(t *testing.T) {
	glass := NewDielectric(1.5)
	critical := 1.0 / 1.5 // sin of asin(1/1.5)

	t.Run("just below critical angle is probabilistic", func(t *testing.T) {
		ray, hit := exitingHit(critical * (1 - 1e-6))

		// High draw refracts
		result, _ := glass.Scatter(ray, hit, &scriptedSampler{values: []float64{0.99}})
		if result.Scattered.Direction.Y >= 0 {
			t.Errorf("Expected refraction with a high draw, got %v", result.Scattered.Direction)
		}

		// Zero draw reflects
		result, _ = glass.Scatter(ray, hit, &scriptedSampler{values: []float64{0}})
		if result.Scattered.Direction.Y <= 0 {
			t.Errorf("Expected reflection with a zero draw, got %v", result.Scattered.Direction)
		}
	})

	t.Run("just above critical angle always reflects", func(t *testing.T) {
		ray, hit := exitingHit(critical * (1 + 1e-6))

		for _, draw := range []float64{0, 0.5, 0.99, 0.999999} {
			result, _ := glass.Scatter(ray, hit, &scriptedSampler{values: []float64{draw}})
			expected := core.Reflect(ray.Direction.Normalize(), hit.Normal)
			if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
				t.Errorf("draw %f: expected reflection %v, got %v", draw, expected, result.Scattered.Direction)
			}
		}
	})
}

func TestDielectric_FreshDrawPerScatter(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewPoint3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{Point: core.NewPoint3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	sampler := &scriptedSampler{values: []float64{0.99, 0.0}}
	first, _ := glass.Scatter(ray, hit, sampler)
	second, _ := glass.Scatter(ray, hit, sampler)

	if sampler.draws != 2 {
		t.Fatalf("Expected one draw per scatter call, got %d draws", sampler.draws)
	}
	if first.Scattered.Direction.Y >= 0 || second.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected refract then reflect, got %v then %v",
			first.Scattered.Direction, second.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence air to glass", 1.0, 1.0 / 1.5, 0.04},
		{"normal incidence glass to air", 1.0, 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"matched media", 1.0, 1.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reflectance(tt.cosine, tt.ratio)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(core.NewRay(core.NewPoint3(0, 0, 2), core.NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || front.Normal != outward {
		t.Errorf("Expected front face with outward normal, got %+v", front)
	}

	var back HitRecord
	back.SetFaceNormal(core.NewRay(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, 1)), outward)
	if back.FrontFace || back.Normal != outward.Negate() {
		t.Errorf("Expected back face with flipped normal, got %+v", back)
	}
}
