package domain

// HistoryItem pairs a document with its most recent analysis.
// LatestAnalysis is nil when the document has none or the fetch failed.
type HistoryItem struct {
	Document       Document        `json:"document"`
	LatestAnalysis *AnalysisResult `json:"latest_analysis,omitempty"`
}

// Analyzed reports whether an analysis is attached.
func (h HistoryItem) Analyzed() bool {
	return h.LatestAnalysis != nil
}

// History is one aggregated page of history items, in document page order.
type History struct {
	Items []HistoryItem `json:"items"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

// AnalyzedCount returns how many items carry an analysis.
func (h History) AnalyzedCount() int {
	n := 0
	for _, item := range h.Items {
		if item.Analyzed() {
			n++
		}
	}
	return n
}
