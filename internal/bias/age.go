package bias

import (
	"sort"
	"strconv"
	"strings"
)

// aggregateAges computes descriptive statistics and bucket counts for the
// values of the selected age column. Unparsable or out-of-range cells are
// skipped and counted, never fatal. Returns nil when no cell parsed.
func (s *Summarizer) aggregateAges(column string, rows []Row) *AgeSummary {
	ages := make([]int, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		raw, ok := row[column]
		if !ok {
			skipped++
			continue
		}
		age, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || age < s.cfg.MinValidAge || age > s.cfg.MaxValidAge {
			skipped++
			continue
		}
		ages = append(ages, age)
	}

	if len(ages) == 0 {
		return nil
	}

	sort.Ints(ages)

	sum := 0
	for _, a := range ages {
		sum += a
	}

	summary := &AgeSummary{
		UsedColumn: column,
		MeanAge:    round1(float64(sum) / float64(len(ages))),
		MedianAge:  medianOf(ages),
		MinAge:     ages[0],
		MaxAge:     ages[len(ages)-1],
		ValidCount: len(ages),
		Skipped:    skipped,
	}

	counts := make([]int, len(s.cfg.AgeBuckets))
	for _, age := range ages {
		for i, bucket := range s.cfg.AgeBuckets {
			if age >= bucket.Min && (bucket.Max < 0 || age <= bucket.Max) {
				counts[i]++
				break
			}
		}
	}

	percents := bucketPercents(counts)
	summary.AgeGroups = make([]AgeGroup, len(s.cfg.AgeBuckets))
	for i, bucket := range s.cfg.AgeBuckets {
		summary.AgeGroups[i] = AgeGroup{
			Label:   bucket.Label,
			Count:   counts[i],
			Percent: percents[i],
		}
	}

	return summary
}

// medianOf returns the median of an already sorted, non-empty slice.
// Even counts average the two middle values.
func medianOf(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return round1(float64(sorted[n/2-1]+sorted[n/2]) / 2)
	}
	return float64(sorted[n/2])
}
