package physics

import "math"

// Viewport maps design-space percentages onto an actual screen, keeping the
// design aspect ratio and centering it with letterbox offsets
type Viewport struct {
	DesignWidth  float64
	DesignHeight float64
	Width        float64
	Height       float64
	Scale        float64
	OffsetX      float64
	OffsetY      float64
}

// NewViewport fits the design canvas into a width x height screen
func NewViewport(designWidth, designHeight, width, height float64) Viewport {
	v := Viewport{
		DesignWidth:  designWidth,
		DesignHeight: designHeight,
		Width:        width,
		Height:       height,
	}
	if designWidth > 0 && designHeight > 0 {
		v.Scale = math.Min(width/designWidth, height/designHeight)
	}
	v.OffsetX = (width - designWidth*v.Scale) / 2
	v.OffsetY = (height - designHeight*v.Scale) / 2
	return v
}

// DefaultViewport maps the design canvas onto itself
func DefaultViewport() Viewport {
	return NewViewport(DesignWidth, DesignHeight, DesignWidth, DesignHeight)
}

// ToPixels converts a percentage point to screen pixels
func (v Viewport) ToPixels(p Vec) Vec {
	return Vec{
		X: v.OffsetX + p.X/100*v.DesignWidth*v.Scale,
		Y: v.OffsetY + p.Y/100*v.DesignHeight*v.Scale,
	}
}

// ToPercent converts screen pixels back to design percentages
func (v Viewport) ToPercent(p Vec) Vec {
	if v.Scale == 0 {
		return Vec{}
	}
	return Vec{
		X: (p.X - v.OffsetX) / (v.DesignWidth * v.Scale) * 100,
		Y: (p.Y - v.OffsetY) / (v.DesignHeight * v.Scale) * 100,
	}
}

// PathToPixels converts every point
func (v Viewport) PathToPixels(points []Vec) []Vec {
	out := make([]Vec, len(points))
	for i, p := range points {
		out[i] = v.ToPixels(p)
	}
	return out
}

// ScaleLength converts a design-space length to pixels
func (v Viewport) ScaleLength(l float64) float64 {
	return l * v.Scale
}
