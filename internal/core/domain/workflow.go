package domain

// CheckOptions controls an upload-then-analyze run.
type CheckOptions struct {
	// BiasTypes restricts the analysis. Empty means all types.
	BiasTypes []BiasType

	// DisableRAG turns off reference context for the analysis.
	DisableRAG bool
}

// AnalysisRequest builds the request for an uploaded document.
func (o CheckOptions) AnalysisRequest(documentID string) AnalysisRequest {
	req := NewAnalysisRequest(documentID, o.BiasTypes...)
	if o.DisableRAG {
		req.UseRAG = false
	}
	return req
}

// CheckResult is the outcome of an upload-then-analyze run.
type CheckResult struct {
	Document UploadedDocument `json:"document"`
	Analysis AnalysisResult   `json:"analysis"`
}
