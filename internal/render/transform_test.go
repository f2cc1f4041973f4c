package render

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"honnef.co/go/curve"

	"flourish/internal/geom"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestComputeTransformAutoBounds(t *testing.T) {
	pts := geom.Points{curve.Pt(0, 0), curve.Pt(1, 1)}
	vp := Viewport{Width: 100, Height: 100, Margin: 0.02}
	tr, err := ComputeTransform(pts, vp, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, geom.Points{curve.Pt(2, 2), curve.Pt(98, 98)}, tr.ApplyAll(pts), approx)
}

func TestComputeTransformExplicitBounds(t *testing.T) {
	pts := geom.Points{curve.Pt(0, 0)}
	bb := &geom.BBox{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
	tr, err := ComputeTransform(pts, Viewport{Width: 200, Height: 200}, bb)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, curve.Pt(100, 100), tr.Apply(pts[0]))
}

func TestComputeTransformDegenerate(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100, Margin: 0.02}
	tests := []struct {
		name   string
		pts    geom.Points
		bounds *geom.BBox
	}{
		{"vertical line", geom.Points{curve.Pt(1, 0), curve.Pt(1, 5)}, nil},
		{"horizontal line", geom.Points{curve.Pt(0, 3), curve.Pt(4, 3)}, nil},
		{"single point", geom.Points{curve.Pt(1, 1)}, nil},
		{"explicit", geom.Points{curve.Pt(0, 0), curve.Pt(1, 1)}, &geom.BBox{MinX: 0, MaxX: 0, MinY: 0, MaxY: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTransform(tt.pts, vp, tt.bounds)
			if !errors.Is(err, ErrDegenerateBounds) {
				t.Fatalf("got %v, want ErrDegenerateBounds", err)
			}
		})
	}
}

func TestComputeTransformErrors(t *testing.T) {
	pts := geom.Points{curve.Pt(0, 0), curve.Pt(1, 1)}
	if _, err := ComputeTransform(nil, Viewport{Width: 10, Height: 10}, nil); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("got %v, want ErrEmptySequence", err)
	}
	if _, err := ComputeTransform(pts, Viewport{Width: 0, Height: 10}, nil); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("got %v, want ErrSurfaceUnavailable", err)
	}
	if _, err := ComputeTransform(pts, Viewport{Width: 10, Height: 10, Margin: 0.5}, nil); !errors.Is(err, ErrInvalidViewport) {
		t.Errorf("got %v, want ErrInvalidViewport", err)
	}
}

func TestTransformStaysInsideMargins(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pts := make(geom.Points, 500)
	for i := range pts {
		pts[i] = curve.Pt(rng.NormFloat64()*30-7, rng.Float64()*0.001+4)
	}
	vp := Viewport{Width: 640, Height: 480, Margin: 0.02}
	tr, err := ComputeTransform(pts, vp, nil)
	if err != nil {
		t.Fatal(err)
	}
	const eps = 1e-9
	mx, my := vp.Margin*vp.Width, vp.Margin*vp.Height
	for _, p := range tr.ApplyAll(pts) {
		if p.X < mx-eps || p.X > vp.Width-mx+eps || p.Y < my-eps || p.Y > vp.Height-my+eps {
			t.Fatalf("%v outside [%g, %g]x[%g, %g]", p, mx, vp.Width-mx, my, vp.Height-my)
		}
	}
}
