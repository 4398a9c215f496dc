package layout

// This file defines zoom bounds and unit conversion helpers shared by the
// viewer and the renderers.

// Zoom bounds and step, matching the reader toolbar: 40%–300% in 20% steps.
const (
	ZoomMin  = 0.4
	ZoomMax  = 3.0
	ZoomStep = 0.2
)

// ClampZoom limits z to the supported range. Non-positive values fall back
// to 1.0 rather than the minimum, so an unset zoom reads as "actual size".
func ClampZoom(z float64) float64 {
	if z <= 0 {
		return 1.0
	}
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}

// ZoomIn returns the next zoom step above z, capped at ZoomMax.
func ZoomIn(z float64) float64 {
	if z+ZoomStep > ZoomMax {
		return ZoomMax
	}
	return z + ZoomStep
}

// ZoomOut returns the next zoom step below z, capped at ZoomMin.
func ZoomOut(z float64) float64 {
	if z-ZoomStep < ZoomMin {
		return ZoomMin
	}
	return z - ZoomStep
}

// Conversion constants between pt and mm. Page geometry arrives in PDF
// points (1 pt = 1 px at zoom 1.0); the canvas backend works in mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)
