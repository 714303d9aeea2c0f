package scheduler

// Frame is the fixed output frame in pixels.
type Frame struct {
	Width  int
	Height int
}

// FitFrame scales a natural size to fill the frame while preserving
// aspect ratio. The longer natural dimension maps onto the matching
// frame dimension and the other follows proportionally; square assets
// map to the frame height. Assets with an unknown size fill the whole
// frame.
func FitFrame(naturalWidth, naturalHeight int, frame Frame) (int, int) {
	if naturalWidth <= 0 || naturalHeight <= 0 {
		return frame.Width, frame.Height
	}
	if naturalWidth > naturalHeight {
		scale := float64(frame.Width) / float64(naturalWidth)
		return frame.Width, roundPixels(float64(naturalHeight) * scale)
	}
	scale := float64(frame.Height) / float64(naturalHeight)
	return roundPixels(float64(naturalWidth) * scale), frame.Height
}

func roundPixels(v float64) int {
	px := int(v + 0.5)
	if px < 1 {
		return 1
	}
	return px
}
