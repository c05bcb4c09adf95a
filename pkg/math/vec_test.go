package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Cross(t *testing.T) {
	if got := (Vec2{1, 0}).Cross(Vec2{0, 1}); got != 1 {
		t.Errorf("Vec2.Cross() = %v, want 1", got)
	}
	if got := (Vec2{1, 0}).Perp(); got != (Vec2{0, 1}) {
		t.Errorf("Vec2.Perp() = %v, want (0, 1)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Vec3.Normalize() = %v, want zero", got)
	}
}

func TestVec3AngleBetween(t *testing.T) {
	got := V3(1, 0, 0).AngleBetween(V3(0, 2, 0))
	if abs(got-float32(math.Pi/2)) > 0.0001 {
		t.Errorf("AngleBetween = %v, want pi/2", got)
	}
	if got := V3(1, 0, 0).AngleBetween(Vec3{}); got != 0 {
		t.Errorf("AngleBetween zero vector = %v, want 0", got)
	}
}
