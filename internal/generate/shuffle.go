package generate

import (
	"level-layout/internal/gamemap"
	"level-layout/internal/rng"
)

// Cardinal directions in their unshuffled order.
var (
	Up    = gamemap.Point{X: 0, Y: -1}
	Down  = gamemap.Point{X: 0, Y: 1}
	Left  = gamemap.Point{X: -1, Y: 0}
	Right = gamemap.Point{X: 1, Y: 0}
)

var directions = [4]gamemap.Point{Up, Down, Left, Right}

// shuffleDirections orders the four directions by sorting them with a
// comparator that ignores its arguments and returns r.NextInRange(-1, 1).
//
// The result is not a uniform shuffle. Layouts produced for a given seed
// depend on the exact number and order of comparator draws, so this mirrors
// the comparison sequence a TimSort performs on four elements: detect the
// leading run (reversing it when it descends), then binary-insert the rest.
func shuffleDirections(r *rng.Rand) [4]gamemap.Point {
	d := directions
	compare := func() int { return r.NextInRange(-1, 1) }

	run := 2
	descending := compare() < 0
	for i := 2; i < len(d); i++ {
		order := compare()
		if (descending && order >= 0) || (!descending && order < 0) {
			break
		}
		run++
	}
	if descending {
		for i, j := 0, run-1; i < j; i, j = i+1, j-1 {
			d[i], d[j] = d[j], d[i]
		}
	}

	for start := run; start < len(d); start++ {
		pivot := d[start]
		left, right := 0, start
		for left < right {
			mid := left + (right-left)/2
			if compare() < 0 {
				right = mid
			} else {
				left = mid + 1
			}
		}
		copy(d[left+1:start+1], d[left:start])
		d[left] = pivot
	}
	return d
}
