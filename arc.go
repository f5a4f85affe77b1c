// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import "math"

// MaxDx is the maximum parametric angle in radians a single cubic spline
// may span when approximating an ellipse.
const MaxDx float64 = math.Pi / 8

// ellipseArc appends an elliptical arc centered on (cx, cy) with radii rx
// and ry, the ellipse x axis rotated by rot, running from parametric angle
// eta0 through dEta. The start point is joined to the current point with a
// line, or starts a subpath when there is none.
func (b *pathBuilder) ellipseArc(cx, cy, rx, ry, rot, eta0, dEta float64) {
	sinT, cosT := math.Sincos(rot)
	sx, sy := ellipsePointAt(rx, ry, sinT, cosT, eta0, cx, cy)
	b.connect(sx, sy)
	if rx == 0 || ry == 0 {
		ex, ey := ellipsePointAt(rx, ry, sinT, cosT, eta0+dEta, cx, cy)
		b.lineTo(ex, ey)
		return
	}
	if dEta == 0 {
		return
	}

	// Approximate the ellipse using a set of cubic bezier curves by the
	// method of L. Maisonobe, "Drawing an elliptical arc using polylines,
	// quadratic or cubic Bezier curves", 2003.
	segs := int(math.Abs(dEta)/MaxDx) + 1
	d := dEta / float64(segs)
	tde := math.Tan(d / 2)
	alpha := math.Sin(d) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := sx, sy
	ldx, ldy := ellipsePrime(rx, ry, sinT, cosT, eta0, cx, cy)
	for i := 1; i <= segs; i++ {
		eta := eta0 + d*float64(i)
		px, py := ellipsePointAt(rx, ry, sinT, cosT, eta, cx, cy)
		dx, dy := ellipsePrime(rx, ry, sinT, cosT, eta, cx, cy)
		b.cubicTo(lx+alpha*ldx, ly+alpha*ldy, px-alpha*dx, py-alpha*dy, px, py)
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// canvasSweep converts canvas arc angles into a signed sweep. Clockwise
// sweeps are positive in the y-down coordinate system.
func canvasSweep(start, end float64, ccw bool) float64 {
	const full = 2 * math.Pi
	if !ccw {
		if end-start >= full {
			return full
		}
		s := math.Mod(end-start, full)
		if s < 0 {
			s += full
		}
		return s
	}
	if start-end >= full {
		return -full
	}
	s := math.Mod(start-end, full)
	if s < 0 {
		s += full
	}
	return -s
}

// svgArc appends an SVG style endpoint arc from the current point to
// (x, y). Radii too small to reach the end point are scaled up.
func (b *pathBuilder) svgArc(rx, ry, rotDeg float64, largeArc, sweep bool, x, y float64) {
	px, py := b.userCurrent()
	if rx == 0 || ry == 0 || (px == x && py == y) {
		b.lineTo(x, y)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	rotX := rotDeg * math.Pi / 180
	cx, cy := FindEllipseCenter(&rx, &ry, rotX, px, py, x, y, !sweep, !largeArc)

	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(y-cy, x-cx) - rotX
	arcBig := math.Abs(endAngle-startAngle) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed when the center lies on the chord
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}
	b.ellipseArc(cx, cy, rx, ry, rotX, etaStart, deltaEta)
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePrime(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// FindEllipseCenter locates the center of the ellipse through the start and
// end points. If none exists the radii are grown minimally, keeping their
// ratio; ra and rb can be checked after the call to see if they changed.
// The problem is reduced to finding the center of a circle through the
// origin and one other point, which is then transformed back.
func FindEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	sin, cos := math.Sincos(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X so that ra = rb; the ellipse is now a circle of radius rb
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
