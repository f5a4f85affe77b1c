// Copyright 2022 The okcanvas Authors. All rights reserved.

package okcanvas

import (
	"log/slog"
	"math"
)

// DefaultWidth and DefaultHeight are the backing store size of a freshly
// created element, as for an HTML canvas.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// ElementFactory creates the element a Canvas draws on when none is given.
type ElementFactory func() (Element, error)

// DensityFunc reports the device pixel density, the ratio of physical to
// logical pixels.
type DensityFunc func() float64

// Option configures a Canvas during creation.
//
// Example:
//
//	// Default raster element
//	c, err := okcanvas.New()
//
//	// Existing element on a HiDPI display
//	c, err := okcanvas.New(okcanvas.WithElement(el), okcanvas.WithDevicePixelRatio(2))
type Option func(*options)

type options struct {
	element Element
	factory ElementFactory
	density DensityFunc
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		factory: RasterFactory,
		density: func() float64 { return 1 },
	}
}

// RasterFactory creates a DefaultWidth x DefaultHeight RasterElement.
func RasterFactory() (Element, error) {
	return NewRasterElement(DefaultWidth, DefaultHeight), nil
}

// MockFactory creates a MockElement.
func MockFactory() (Element, error) {
	return NewMockElement(), nil
}

// WithElement wraps an existing element instead of creating one.
func WithElement(el Element) Option {
	return func(o *options) {
		o.element = el
	}
}

// WithFactory sets the factory used when no element is given.
func WithFactory(f ElementFactory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithDensity sets the device pixel density source. It is read once per
// Size call.
func WithDensity(f DensityFunc) Option {
	return func(o *options) {
		if f != nil {
			o.density = f
		}
	}
}

// WithDevicePixelRatio fixes the device pixel density.
func WithDevicePixelRatio(r float64) Option {
	return WithDensity(func() float64 { return r })
}

// WithLogger overrides the package logger for one canvas.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// density reads f, treating missing or unusable values as 1.
func density(f DensityFunc) float64 {
	if f == nil {
		return 1
	}
	d := f()
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 1
	}
	return d
}
