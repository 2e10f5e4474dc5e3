package documents

import "strings"

const unknownLabel = "unknown"

// SourceSummary holds status counts for one source.
type SourceSummary struct {
	Statuses map[string]int `json:"statuses"`
	Total    int            `json:"total"`
}

// Summary aggregates a project's documents by source and status.
type Summary struct {
	Sources        map[string]*SourceSummary `json:"sources"`
	TotalProcessed int                       `json:"total_processed"`
	TotalAnalysed  int                       `json:"total_analysed"`
	Total          int                       `json:"total"`
}

// Summarize folds grouped counts into a Summary. Rows sharing a source and
// status are added together.
func Summarize(rows []SourceStatusCount) Summary {
	sum := Summary{Sources: map[string]*SourceSummary{}}
	for _, row := range rows {
		source := orUnknown(row.Source)
		status := orUnknown(row.Status)

		s, ok := sum.Sources[source]
		if !ok {
			s = &SourceSummary{Statuses: map[string]int{}}
			sum.Sources[source] = s
		}
		s.Statuses[status] += row.Count
		s.Total += row.Count
		sum.Total += row.Count

		switch {
		case isProcessed(status):
			sum.TotalProcessed += row.Count
		case isAnalysed(status):
			sum.TotalAnalysed += row.Count
		}
	}
	return sum
}

func isProcessed(status string) bool {
	return strings.EqualFold(status, "processed")
}

func isAnalysed(status string) bool {
	return strings.EqualFold(status, "analysed") || strings.EqualFold(status, "analyzed")
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return unknownLabel
	}
	return v
}
