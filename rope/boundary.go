package rope

import "github.com/rivo/uniseg"

// graphemeWindow bounds how far SnapGraphemes scans behind a position.
// Grapheme clusters longer than this do not occur in practice.
const graphemeWindow = 256

// SnapUTF8 moves pos back to the start of the UTF-8 sequence containing
// it. Positions at either end of the rope are already boundaries.
func SnapUTF8(r Rope, pos int) int {
	for pos > 0 && pos < r.Len() {
		b, err := r.At(pos)
		if err != nil || isUTF8Start(b) {
			break
		}
		pos--
	}
	return pos
}

// SnapGraphemes moves pos back to the nearest grapheme-cluster boundary,
// so splits never separate a combining mark, ZWJ sequence, or regional
// indicator pair from its cluster.
func SnapGraphemes(r Rope, pos int) int {
	pos = SnapUTF8(r, pos)
	if pos <= 0 || pos >= r.Len() {
		return pos
	}

	start := pos - graphemeWindow
	if start < 0 {
		start = 0
	}
	for start > 0 {
		b, err := r.At(start)
		if err != nil || isUTF8Start(b) {
			break
		}
		start--
	}
	end := pos + graphemeWindow
	if end > r.Len() {
		end = r.Len()
	}
	end = SnapUTF8(r, end)

	window, err := r.Report(start, end)
	if err != nil {
		return pos
	}

	rel := pos - start
	g := uniseg.NewGraphemes(window)
	last := 0
	for g.Next() {
		from, _ := g.Positions()
		if from == rel {
			return pos
		}
		if from > rel {
			return start + last
		}
		last = from
	}
	return start + last
}
