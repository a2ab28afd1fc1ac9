package model

import (
	"math"
	"testing"
)

func TestPoint_Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", NewPoint(1, 2, 3), NewPoint(1, 2, 3), 0},
		{"axis x", NewPoint(0, 0, 0), NewPoint(3, 0, 0), 3},
		{"3-4-5", NewPoint(0, 0, 0), NewPoint(3, 0, 4), 5},
		{"negative", NewPoint(-1, 0, -1), NewPoint(2, 0, 3), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := tt.a.DistanceSquared(tt.b); math.Abs(got-tt.want*tt.want) > 1e-9 {
				t.Errorf("DistanceSquared() = %v, want %v", got, tt.want*tt.want)
			}
		})
	}
}

func TestPoint_Normalize(t *testing.T) {
	n := NewPoint(0, 0, 5).Normalize()
	if n != NewPoint(0, 0, 1) {
		t.Errorf("Normalize() = %v, want (0,0,1)", n)
	}

	if short := NewPoint(0.01, 0, 0).Normalize(); !short.IsZero() {
		t.Errorf("Normalize() of short vector = %v, want zero", short)
	}
}

func TestPoint_Arithmetic(t *testing.T) {
	p := NewPoint(1, 2, 3).Add(NewPoint(1, 1, 1)).Sub(NewPoint(0, 1, 0)).Scale(2)
	if p != NewPoint(4, 4, 8) {
		t.Errorf("got %v, want (4,4,8)", p)
	}
}
