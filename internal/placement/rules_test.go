package placement

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestResolveScenarios(t *testing.T) {
	r := Default()
	negZero := float32(math.Copysign(0, -1))
	var tests = []struct {
		raw  mgl32.Vec3
		want mgl32.Vec3
	}{
		{mgl32.Vec3{3.2, 0, -9.6}, mgl32.Vec3{3, 0, -9}},
		{mgl32.Vec3{0.5, 4, -0.5}, mgl32.Vec3{1, 0, -1}},
		{mgl32.Vec3{8.6, 0, 8.4}, mgl32.Vec3{9, 0, 8}},
		{mgl32.Vec3{100, -3, -1000}, mgl32.Vec3{9, 0, -9}},
		{mgl32.Vec3{-0.3, 0, negZero}, mgl32.Vec3{0, 0, 0}},
		{mgl32.Vec3{float32(math.Inf(1)), 0, float32(math.Inf(-1))}, mgl32.Vec3{9, 0, -9}},
		{mgl32.Vec3{float32(math.NaN()), 0, 2.2}, mgl32.Vec3{0, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.raw), func(t *testing.T) {
			got := r.Resolve(tt.raw)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			for _, v := range []float32{got.X(), got.Z()} {
				if v == 0 && math.Signbit(float64(v)) {
					t.Errorf("got negative zero in %v", got)
				}
			}
		})
	}
}

func TestResolveAlwaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, rules := range []Rules{Default(), {Limit: 4.5, Grid: 0.5, Floor: 0.25}, {Limit: 9, Grid: 0}} {
		for i := 0; i < 5000; i++ {
			scale := math.Pow(10, float64(rng.Intn(6)))
			raw := mgl32.Vec3{
				float32((rng.Float64()*2 - 1) * scale),
				float32((rng.Float64()*2 - 1) * scale),
				float32((rng.Float64()*2 - 1) * scale),
			}
			got := rules.Resolve(raw)
			if got.X() < -rules.Limit || got.X() > rules.Limit || got.Z() < -rules.Limit || got.Z() > rules.Limit {
				t.Fatalf("%+v: Resolve(%v) = %v out of bounds", rules, raw, got)
			}
			if got.Y() != rules.Floor {
				t.Fatalf("%+v: Resolve(%v) y = %v, want floor %v", rules, raw, got.Y(), rules.Floor)
			}
			if !rules.Contains(got) {
				t.Fatalf("Contains(%v) = false", got)
			}
		}
	}
}

func TestResolveSnapsBeforeClamp(t *testing.T) {
	r := Rules{Limit: 8.5, Grid: 1}
	got := r.Resolve(mgl32.Vec3{8.6, 0, -8.7})
	if got.X() != 8.5 || got.Z() != -8.5 {
		t.Errorf("got %v, want boundary (8.5, 0, -8.5)", got)
	}
}

func TestQuantizeYaw(t *testing.T) {
	quarter := float32(math.Pi / 2)
	eighth := float32(math.Pi / 4)
	var tests = []struct {
		yaw, step, want float32
	}{
		{0.1, quarter, 0},
		{1.5, quarter, quarter},
		{-quarter, quarter, 3 * quarter},
		{4 * quarter, quarter, 0},
		{0.9, eighth, eighth},
		{7.5, 0, float32(7.5 - 2*math.Pi)},
	}
	for _, tt := range tests {
		got := QuantizeYaw(tt.yaw, tt.step)
		if !mgl32.FloatEqualThreshold(got, tt.want, 1e-5) {
			t.Errorf("QuantizeYaw(%v, %v) = %v, want %v", tt.yaw, tt.step, got, tt.want)
		}
	}
}
