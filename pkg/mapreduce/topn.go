package mapreduce

import (
	"fmt"
	"sort"
)

// TopicCount is one entry of a ranked topic list.
type TopicCount struct {
	Topic string `json:"topic" yaml:"topic"`
	Count int    `json:"count" yaml:"count"`
}

func (tc TopicCount) String() string {
	return fmt.Sprintf("%s:%d", tc.Topic, tc.Count)
}

// TopTopics returns the n most frequent topics, most frequent first.
// Equal counts are ordered by name so output is stable between runs.
func TopTopics(counts map[string]int, n int) []TopicCount {
	ss := make([]TopicCount, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, TopicCount{Topic: k, Count: v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Topic < ss[j].Topic
	})

	if n < 0 {
		n = 0
	}
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}
