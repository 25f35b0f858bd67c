// Package curve samples parametric curves onto the integer canvas grid.
//
// Every generator returns an [iter.Seq] of [domain.CurveSample]. Sequences
// are finite and restartable: each range over a sequence starts again from
// the beginning of the parameter domain. Parameters are validated before the
// sequence is created, so invalid input never reaches a draw session.
//
// The parameter domain is [0, 2π] by default. Samples are taken at regular
// (or variable, see [WithStepFunc]) increments of t while t < 2π, followed
// by one closing sample at exactly 2π, which may repeat the first cell.
package curve
