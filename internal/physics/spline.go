package physics

// SampleSpline returns a uniform Catmull-Rom polyline through every control
// point. Each segment contributes samplesPerSegment points starting at its
// first control point, and the final control point closes the line, so the
// result has (len(points)-1)*samplesPerSegment+1 points. End tangents use
// duplicated endpoints.
func SampleSpline(points []Vec, samplesPerSegment int) []Vec {
	switch len(points) {
	case 0:
		return nil
	case 1:
		return []Vec{points[0]}
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}

	out := make([]Vec, 0, (len(points)-1)*samplesPerSegment+1)
	last := len(points) - 1
	for i := 0; i < last; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, last)]

		out = append(out, p1)
		for s := 1; s < samplesPerSegment; s++ {
			t := float64(s) / float64(samplesPerSegment)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	return append(out, points[last])
}

func catmullRom(p0, p1, p2, p3 Vec, t float64) Vec {
	t2 := t * t
	t3 := t2 * t
	return Vec{
		X: 0.5 * (2*p1.X + (-p0.X+p2.X)*t + (2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 + (-p0.X+3*p1.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y + (-p0.Y+p2.Y)*t + (2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 + (-p0.Y+3*p1.Y-3*p2.Y+p3.Y)*t3),
	}
}

// PathLength is the total length of a polyline
func PathLength(path []Vec) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += distance(path[i-1], path[i])
	}
	return total
}
