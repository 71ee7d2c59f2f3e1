package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/biasctl/internal/adapters/driven/api"
	"github.com/custodia-labs/biasctl/internal/core/domain"
)

func TestWorkflowService_UploadThenAnalyze(t *testing.T) {
	content := bytes.Repeat([]byte("a"), 2*1024*1024)
	var analyzeBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/documents/upload":
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			data, _ := io.ReadAll(file)
			assert.Len(t, data, len(content))
			assert.Equal(t, "essay.txt", header.Filename)
			_, _ = io.WriteString(w, `{"document_id":"doc-42","filename":"essay.txt","file_size":2097152,"file_type":"text/plain","uploaded_at":"2024-05-01T08:00:00"}`)
		case "/api/v1/analysis/analyze":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&analyzeBody))
			_, _ = io.WriteString(w, `{"document_id":"doc-42","overall_score":0.42,"bias_instances":[],"summary":"moderate","analyzed_at":"2024-05-01T08:00:05"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := api.NewClient(api.Config{BaseURL: srv.URL})
	uploads := NewUploadService(client)
	analyses := NewAnalysisService(client)
	svc := NewWorkflowService(uploads, analyses)

	result, err := svc.UploadAndAnalyze(context.Background(), domain.UploadFile{
		Name:        "essay.txt",
		Size:        int64(len(content)),
		ContentType: "text/plain",
		Content:     bytes.NewReader(content),
	}, domain.CheckOptions{})

	require.NoError(t, err)
	assert.Equal(t, "doc-42", result.Document.DocumentID)
	assert.Equal(t, "doc-42", analyzeBody["document_id"])
	assert.Equal(t, true, analyzeBody["use_rag"])
	assert.Equal(t, "Moderate Bias", result.Analysis.Level().Label())
	assert.Equal(t, "Moderate Bias", analyses.Result().Level().Label())
	assert.False(t, uploads.Uploading())
	assert.False(t, analyses.Analyzing())
}

func TestWorkflowService_UploadFailureSkipsAnalysis(t *testing.T) {
	analyzed := false
	mock := &mockAPI{
		uploadFn: func(context.Context, domain.UploadFile) (*domain.UploadedDocument, error) {
			return nil, errDetail(400, "Could not read file")
		},
		analyzeFn: func(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			analyzed = true
			return &domain.AnalysisResult{}, nil
		},
	}
	uploads := NewUploadService(mock)
	analyses := NewAnalysisService(mock)

	svc := NewWorkflowService(uploads, analyses)
	_, err := svc.UploadAndAnalyze(context.Background(), textFile("a.txt", 10), domain.CheckOptions{})

	require.Error(t, err)
	assert.Equal(t, "Could not read file", err.Error())
	assert.False(t, analyzed)
	assert.Equal(t, domain.StatusIdle, analyses.Snapshot().Status)
}

func TestWorkflowService_Options(t *testing.T) {
	var got domain.AnalysisRequest
	mock := &mockAPI{
		uploadFn: func(context.Context, domain.UploadFile) (*domain.UploadedDocument, error) {
			return &domain.UploadedDocument{DocumentID: "doc-1"}, nil
		},
		analyzeFn: func(_ context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
			got = req
			return &domain.AnalysisResult{DocumentID: req.DocumentID}, nil
		},
	}
	svc := NewWorkflowService(NewUploadService(mock), NewAnalysisService(mock))

	_, err := svc.UploadAndAnalyze(context.Background(), textFile("a.txt", 10), domain.CheckOptions{
		DisableRAG: true,
		BiasTypes:  []domain.BiasType{domain.BiasPolitical},
	})

	require.NoError(t, err)
	assert.False(t, got.UseRAG)
	assert.Equal(t, []domain.BiasType{domain.BiasPolitical}, got.BiasTypes)
}
