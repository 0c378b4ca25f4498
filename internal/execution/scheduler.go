package execution

import (
	"os"
	"sort"
)

// Scheduler distributes tests across workers
type Scheduler interface {
	Schedule(tests []string, workerCount int) [][]string
}

// WeightFunc estimates the relative cost of running one test module
type WeightFunc func(testPath string) int64

// FileSize weighs a module by its size on disk. elm-test compiles every
// module before running it, so bigger modules tend to take longer.
// Unreadable files weigh 1.
func FileSize(testPath string) int64 {
	info, err := os.Stat(testPath)
	if err != nil || info.Size() < 1 {
		return 1
	}
	return info.Size()
}

// BalancedScheduler hands the heaviest remaining module to the least loaded
// worker, so one large module does not end up queued behind several others.
type BalancedScheduler struct {
	weight WeightFunc
}

// NewBalancedScheduler creates a BalancedScheduler. A nil weight uses FileSize.
func NewBalancedScheduler(weight WeightFunc) *BalancedScheduler {
	if weight == nil {
		weight = FileSize
	}
	return &BalancedScheduler{weight: weight}
}

// Schedule returns one batch per worker. Ties go to the lower worker index
// and modules of equal weight keep their input order.
func (s *BalancedScheduler) Schedule(tests []string, workerCount int) [][]string {
	if workerCount <= 0 {
		workerCount = 1
	}

	weights := make(map[string]int64, len(tests))
	for _, test := range tests {
		weights[test] = s.weight(test)
	}
	ordered := make([]string, len(tests))
	copy(ordered, tests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return weights[ordered[i]] > weights[ordered[j]]
	})

	distribution := make([][]string, workerCount)
	loads := make([]int64, workerCount)
	for _, test := range ordered {
		target := 0
		for w := 1; w < workerCount; w++ {
			if loads[w] < loads[target] {
				target = w
			}
		}
		distribution[target] = append(distribution[target], test)
		loads[target] += weights[test]
	}

	return distribution
}
