package bias

import "math"

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// splitPercents computes the male/female percentage pair rounded to one
// decimal. Independent rounding can drift the sum to 99.9 or 100.1, so the
// residual is folded back in: the female share absorbs it when male >= female,
// otherwise the male share does. The returned pair always sums to exactly
// 100.0.
func splitPercents(male, female int) (malePct, femalePct float64) {
	total := male + female
	if total == 0 {
		return 0, 0
	}

	malePct = round1(100 * float64(male) / float64(total))
	femalePct = round1(100 * float64(female) / float64(total))

	if residual := round1(100 - malePct - femalePct); residual != 0 {
		if male >= female {
			femalePct = round1(femalePct + residual)
		} else {
			malePct = round1(malePct + residual)
		}
	}
	return malePct, femalePct
}

// bucketPercents computes percent-of-total for each count, rounded to one
// decimal, with the rounding residual distributed to the largest bucket
// (first largest on ties) so the percents sum to exactly 100.0. A zero total
// yields all zeros.
func bucketPercents(counts []int) []float64 {
	percents := make([]float64, len(counts))

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return percents
	}

	sum := 0.0
	largest := 0
	for i, c := range counts {
		percents[i] = round1(100 * float64(c) / float64(total))
		sum += percents[i]
		if c > counts[largest] {
			largest = i
		}
	}

	if residual := round1(100 - sum); residual != 0 {
		percents[largest] = round1(percents[largest] + residual)
	}
	return percents
}
