package domain

// Question asks the RAG assistant about bias patterns.
type Question struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id,omitempty"`
	TopK       int    `json:"top_k,omitempty"`
}

// RAGSource is a document cited by an answer.
type RAGSource struct {
	Filename   string  `json:"filename"`
	DocumentID string  `json:"document_id"`
	Relevance  float64 `json:"relevance"`
}

// Answer is the RAG assistant's reply.
type Answer struct {
	Question       string      `json:"question"`
	Answer         string      `json:"answer"`
	Sources        []RAGSource `json:"sources"`
	NumSourcesUsed int         `json:"num_sources_used"`
}

// ContextRequest looks up reference chunks similar to a text.
type ContextRequest struct {
	Text              string `json:"text"`
	ExcludeDocumentID string `json:"exclude_document_id,omitempty"`
	TopK              int    `json:"top_k"`
}

// ContextChunk is one reference chunk.
type ContextChunk struct {
	Text           string  `json:"text"`
	Filename       string  `json:"filename"`
	RelevanceScore float64 `json:"relevance_score"`
	DocumentID     string  `json:"document_id"`
}

// ContextResponse lists the reference chunks found.
type ContextResponse struct {
	ContextChunks []ContextChunk `json:"context_chunks"`
	TotalFound    int            `json:"total_found"`
}

// BiasDistribution is one bar of the bias-type histogram.
type BiasDistribution struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// SystemStatistics aggregates counts across all documents.
type SystemStatistics struct {
	TotalDocuments    int                `json:"total_documents"`
	TotalAnalyses     int                `json:"total_analyses"`
	AverageBiasScore  float64            `json:"average_bias_score"`
	BiasDistribution  []BiasDistribution `json:"bias_distribution"`
	DatabaseConnected bool               `json:"database_connected"`
	RAGEnabled        bool               `json:"rag_enabled"`
}

// MaxBiasCount returns the largest histogram count, never less than 1.
func (s *SystemStatistics) MaxBiasCount() int {
	maxCount := 1
	for _, b := range s.BiasDistribution {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	return maxCount
}

// RAGStatus reports the backend RAG configuration.
type RAGStatus struct {
	RAGEnabled         bool           `json:"rag_enabled"`
	MaxContextChunks   int            `json:"max_context_chunks"`
	RelevanceThreshold float64        `json:"relevance_threshold"`
	DatabaseConnected  bool           `json:"database_connected"`
	OllamaStatus       map[string]any `json:"ollama_status,omitempty"`
	EmbeddingModel     string         `json:"embedding_model"`
	AnalysisModel      string         `json:"analysis_model"`
	VectorDB           string         `json:"vector_db"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat roles.
const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the RAG conversation.
type ChatMessage struct {
	Role    ChatRole    `json:"role"`
	Content string      `json:"content"`
	Sources []RAGSource `json:"sources,omitempty"`
}
