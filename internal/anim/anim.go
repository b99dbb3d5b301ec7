// Package anim provides time-based tweens for moving and scaling items.
// Tweens are pure values; the caller samples them with the current time.
package anim

import (
	"math"
	"time"

	"github.com/abhisek/sortbot/internal/geom"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear is constant-speed easing.
func Linear(t float64) float64 { return t }

// EaseInOut accelerates then decelerates (smoothstep).
func EaseInOut(t float64) float64 { return t * t * (3 - 2*t) }

// progress returns the eased fraction of d elapsed since start, and
// whether the tween is finished.
func progress(start time.Time, d time.Duration, now time.Time, ease Easing) (float64, bool) {
	if d <= 0 {
		return 1, true
	}
	t := float64(now.Sub(start)) / float64(d)
	if t >= 1 {
		return 1, true
	}
	if t < 0 {
		t = 0
	}
	if ease == nil {
		ease = Linear
	}
	return ease(t), false
}

// Move tweens a position from From to To.
type Move struct {
	From, To geom.Point
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// At returns the position at now and whether the move is complete.
// A completed move always reports exactly To.
func (m Move) At(now time.Time) (geom.Point, bool) {
	p, done := progress(m.Start, m.Duration, now, m.Ease)
	if done {
		return m.To, true
	}
	return geom.Point{
		X: m.From.X + int(math.Round(float64(m.To.X-m.From.X)*p)),
		Y: m.From.Y + int(math.Round(float64(m.To.Y-m.From.Y)*p)),
	}, false
}

// Scale tweens a scale factor from From to From*By.
type Scale struct {
	From     float64
	By       float64
	Start    time.Time
	Duration time.Duration
}

// At returns the scale at now and whether the tween is complete.
func (s Scale) At(now time.Time) (float64, bool) {
	target := s.From * s.By
	p, done := progress(s.Start, s.Duration, now, Linear)
	if done {
		return target, true
	}
	return s.From + (target-s.From)*p, false
}
