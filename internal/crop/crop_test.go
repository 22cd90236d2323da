package crop

import (
	"math"
	"math/rand"
	"testing"
)

func TestComputePureScaleWhenRatiosMatch(t *testing.T) {
	decision := Compute(1920, 1080, 1280, 720, 50, 50)
	if !decision.IsFullFrame(1920, 1080) {
		t.Fatalf("expected full frame, got %#v", decision)
	}
}

func TestComputeWideSourceToVertical(t *testing.T) {
	// 1920x1080 source into 9:16: the source is wider, so the crop is
	// horizontal and the height is kept.
	targetRatio := 1080.0 / 1920.0
	wantW := int(math.Round(1080 * targetRatio))

	centered := Compute(1920, 1080, 1080, 1920, 50, 50)
	if centered.Width != wantW || centered.Height != 1080 {
		t.Fatalf("unexpected crop size: %#v (want width %d)", centered, wantW)
	}
	maxOffset := 1920 - wantW
	if centered.OffsetX != maxOffset/2 && centered.OffsetX != (maxOffset+1)/2 {
		t.Fatalf("expected centered offset near %d, got %d", maxOffset/2, centered.OffsetX)
	}

	left := Compute(1920, 1080, 1080, 1920, 0, 50)
	if left.OffsetX != 0 {
		t.Fatalf("expected offset 0 at focus 0, got %d", left.OffsetX)
	}

	right := Compute(1920, 1080, 1080, 1920, 100, 50)
	if right.OffsetX != maxOffset {
		t.Fatalf("expected offset %d at focus 100, got %d", maxOffset, right.OffsetX)
	}
}

func TestComputeTallSourceToLandscape(t *testing.T) {
	decision := Compute(1080, 1920, 1920, 1080, 50, 0)
	if decision.Width != 1080 {
		t.Fatalf("expected full width kept, got %#v", decision)
	}
	wantH := int(math.Round(1080 / (1920.0 / 1080.0)))
	if decision.Height != wantH {
		t.Fatalf("expected crop height %d, got %d", wantH, decision.Height)
	}
	if decision.OffsetY != 0 {
		t.Fatalf("expected top-anchored crop at focus 0, got %d", decision.OffsetY)
	}
}

func TestComputeContainmentProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sources := [][2]int{{1920, 1080}, {1080, 1920}, {1280, 720}, {720, 1280}, {3840, 2160}, {640, 480}}
	targets := [][2]int{{1080, 1920}, {1080, 1080}, {1080, 1350}, {1920, 1080}}

	for i := 0; i < 500; i++ {
		src := sources[rng.Intn(len(sources))]
		dst := targets[rng.Intn(len(targets))]
		focusX := rng.Float64() * 100
		focusY := rng.Float64() * 100

		d := Compute(src[0], src[1], dst[0], dst[1], focusX, focusY)
		if d.OffsetX < 0 || d.OffsetX+d.Width > src[0] {
			t.Fatalf("horizontal containment violated: src=%v dst=%v focus=(%f,%f) decision=%#v", src, dst, focusX, focusY, d)
		}
		if d.OffsetY < 0 || d.OffsetY+d.Height > src[1] {
			t.Fatalf("vertical containment violated: src=%v dst=%v focus=(%f,%f) decision=%#v", src, dst, focusX, focusY, d)
		}
		if d.Width <= 0 || d.Height <= 0 {
			t.Fatalf("degenerate crop: %#v", d)
		}
	}
}

func TestComputeClampsOutOfRangeFocus(t *testing.T) {
	d := Compute(1920, 1080, 1080, 1920, 250, -40)
	if d.OffsetX+d.Width > 1920 || d.OffsetX < 0 {
		t.Fatalf("clamping failed: %#v", d)
	}
}
