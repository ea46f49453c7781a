// Package mapreduce aggregates topic frequencies across enriched rows.
package mapreduce

import "strings"

// Map counts the topics of a single row. Blank topics are skipped and
// duplicates within the row count once.
func Map(topics []string) map[string]int {
	counts := make(map[string]int, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		counts[t] = 1
	}
	return counts
}

// Reduce aggregates a slice of topic frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for topic, count := range counts {
			finalResults[topic] += count
		}
	}

	return finalResults
}
