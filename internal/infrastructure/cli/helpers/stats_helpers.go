package helpers

import (
	"sort"
	"time"

	"github.com/doeshing/wallpaper/internal/domain"
)

// ProgramStatistic represents run counts for one external program
type ProgramStatistic struct {
	Program    string
	Count      int
	Successful int
}

// RunSummary aggregates run log records
type RunSummary struct {
	Total       int
	Successful  int
	Programs    []ProgramStatistic
	LastFailure time.Time
}

// SummarizeRuns aggregates records into totals and per-program counts.
// Programs are ordered by count (descending) then name.
func SummarizeRuns(records []domain.RunRecord) RunSummary {
	summary := RunSummary{Total: len(records)}
	byProgram := make(map[string]*ProgramStatistic)

	for _, rec := range records {
		stat, ok := byProgram[rec.Program]
		if !ok {
			stat = &ProgramStatistic{Program: rec.Program}
			byProgram[rec.Program] = stat
		}
		stat.Count++
		if rec.Success {
			stat.Successful++
			summary.Successful++
			continue
		}
		if rec.Timestamp.After(summary.LastFailure) {
			summary.LastFailure = rec.Timestamp
		}
	}

	summary.Programs = make([]ProgramStatistic, 0, len(byProgram))
	for _, stat := range byProgram {
		summary.Programs = append(summary.Programs, *stat)
	}
	sortStatisticsByCount(summary.Programs)
	return summary
}

// sortStatisticsByCount sorts statistics by count (descending) then by program name (ascending)
func sortStatisticsByCount(stats []ProgramStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Program < stats[j].Program
		}
		return stats[i].Count > stats[j].Count
	})
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, executedCount int) float64 {
	if executedCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(executedCount) * 100.0
}
