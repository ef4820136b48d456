// Package assets implements the per-kind parsers and in-place editors that
// operate on records located by package zone's asset-pool scan.
package assets

import "errors"

// ErrSkipped is returned by a parser when the pool record it was given
// refers to data stored outside the zone buffer (an external reference),
// or to a type this core does not parse. It is not a failure: the caller
// should keep the record as an opaque, unparsed asset.
var ErrSkipped = errors.New("assets: record refers to external or unparsed data")

// rawFileExtensions are the extensions the RawFile parser's forward scan
// recognizes, in the order it tries them.
var rawFileExtensions = []string{
	".cfg", ".gsc", ".atr", ".csc", ".rmb", ".arena", ".vision", ".txt", ".str", ".menu",
}

const ptrSentinel = 0xFFFFFFFF

// span is embedded by every parsed asset kind to track its byte extent in
// the zone buffer, per the "every parsed asset records its bounds"
// invariant.
type span struct {
	StartOffset int
	EndOffset   int
}

// Bounds returns the asset's [start, end) extent within the zone buffer.
func (s span) Bounds() (start, end int) { return s.StartOffset, s.EndOffset }

// clampEnd trims end so it never exceeds the next asset's start, guarding
// against the overshoot observed in wild weapon records.
func clampEnd(end, nextStart int) int {
	if nextStart > 0 && end > nextStart {
		return nextStart
	}
	return end
}
