package draw

import "github.com/aretw0/brush/pkg/domain"

// Solid paints every sample with the same color.
func Solid(c domain.Color) domain.ColorRule {
	return func(domain.Position, domain.CurveSample) domain.Color {
		return c
	}
}

// HalfSplit colors samples left of the reference with left and the rest
// with right, splitting a circle into two halves.
func HalfSplit(left, right domain.Color) domain.ColorRule {
	return func(ref domain.Position, s domain.CurveSample) domain.Color {
		if s.Position.X < ref.X {
			return left
		}
		return right
	}
}

// DropletSplit is HalfSplit for samples above the reference and the
// mirrored split for samples at or below it.
func DropletSplit(left, right domain.Color) domain.ColorRule {
	return func(ref domain.Position, s domain.CurveSample) domain.Color {
		west := s.Position.X < ref.X
		if s.Position.Y >= ref.Y {
			west = !west
		}
		if west {
			return left
		}
		return right
	}
}
