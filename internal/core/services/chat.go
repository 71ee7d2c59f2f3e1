package services

import (
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// AnswerFailed is the message shown when a question fails without a reason.
const AnswerFailed = "Failed to get answer"

var suggestedQuestions = []string{
	"What types of bias are most common in the analyzed documents?",
	"Are there any gender biases detected?",
	"What suggestions are given to reduce political bias?",
	"Show me examples of cultural bias",
}

// ChatService holds a RAG conversation.
// A failed question stays in the conversation without an answer.
type ChatService struct {
	api  driven.BiasAPI
	topK int

	mu       sync.Mutex
	messages []domain.ChatMessage
	asking   bool
	err      string
}

// NewChatService creates a new chat service with the default context size.
func NewChatService(api driven.BiasAPI, topK int) *ChatService {
	if topK <= 0 {
		topK = domain.DefaultRAGTopK
	}
	return &ChatService{api: api, topK: topK}
}

// Ask sends question with the default context size.
func (s *ChatService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	return s.AskAbout(ctx, domain.Question{Question: question})
}

// AskAbout sends q, filling in the default TopK.
func (s *ChatService) AskAbout(ctx context.Context, q domain.Question) (*domain.Answer, error) {
	if strings.TrimSpace(q.Question) == "" {
		return nil, domain.ErrEmptyQuery
	}

	s.mu.Lock()
	if s.asking {
		s.mu.Unlock()
		return nil, domain.ErrOperationInProgress
	}
	s.messages = append(s.messages, domain.ChatMessage{Role: domain.RoleUser, Content: q.Question})
	s.asking = true
	s.err = ""
	s.mu.Unlock()

	settled := false
	defer func() {
		if !settled {
			s.finish(nil, AnswerFailed)
		}
	}()

	answer, err := s.Answer(ctx, q)
	if err != nil {
		s.finish(nil, domain.ErrorMessage(err, AnswerFailed))
		settled = true
		return nil, err
	}

	s.finish(answer, "")
	settled = true
	return answer, nil
}

// Answer sends q, filling in the default TopK. The conversation is left
// untouched and no in-flight guard applies.
func (s *ChatService) Answer(ctx context.Context, q domain.Question) (*domain.Answer, error) {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" {
		return nil, domain.ErrEmptyQuery
	}
	if q.TopK <= 0 {
		q.TopK = s.topK
	}

	answer, err := s.api.AskQuestion(ctx, q)
	if err == nil && answer == nil {
		err = errEmptyResponse
	}
	if err != nil {
		return nil, failure("ask", AnswerFailed, err)
	}
	return answer, nil
}

func (s *ChatService) finish(answer *domain.Answer, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asking = false
	s.err = errMsg
	if answer != nil {
		s.messages = append(s.messages, domain.ChatMessage{
			Role:    domain.RoleAssistant,
			Content: answer.Answer,
			Sources: answer.Sources,
		})
	}
}

// Messages returns a copy of the conversation.
func (s *ChatService) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Asking reports whether a question is in flight.
func (s *ChatService) Asking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asking
}

// Error returns the message of the last failure, or "".
func (s *ChatService) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// SuggestedQuestions returns the starter prompts.
func (s *ChatService) SuggestedQuestions() []string {
	out := make([]string, len(suggestedQuestions))
	copy(out, suggestedQuestions)
	return out
}

// Reset clears the conversation. A question in flight still settles.
func (s *ChatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.err = ""
}
