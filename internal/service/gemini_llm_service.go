package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ptmai/recallify/config"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuestionGenRequest asks the model for a fixed number of active recall
// questions over the extracted document text.
type QuestionGenRequest struct {
	DocumentContent string
	DocumentTitle   string
	Count           int
}

// ExplanationGenRequest asks the model for one explanation per question,
// order-preserved: explanation[i] answers Questions[i].
type ExplanationGenRequest struct {
	DocumentContent string
	DocumentTitle   string
	Questions       []string
}

// GradingRequest carries everything the grader needs for one answer.
type GradingRequest struct {
	Question    string
	Explanation string
	UserAnswer  string
}

// GradingResult holds the discrete score and its markdown rendering.
type GradingResult struct {
	Score         float64 `json:"score"`
	MarkdownScore string  `json:"markdown_score"`
}

// GeminiLLMService is the external language-model collaborator. Each call is
// one blocking round trip; failures surface as typed errors, no retries.
type GeminiLLMService interface {
	GenerateQuestions(ctx context.Context, req QuestionGenRequest) ([]string, error)
	GenerateExplanations(ctx context.Context, req ExplanationGenRequest) ([]string, error)
	GradeAnswer(ctx context.Context, req GradingRequest) (*GradingResult, error)
}

type geminiLLMService struct {
	client *genai.Client
	cfg    *config.Config
}

const geminiModelName = "gemini-1.5-flash"

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, cfg: cfg}, nil
}

func (s *geminiLLMService) jsonModel() *genai.GenerativeModel {
	m := s.client.GenerativeModel(geminiModelName)
	m.ResponseMIMEType = "application/json"
	return m
}

func (s *geminiLLMService) GenerateQuestions(ctx context.Context, req QuestionGenRequest) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", errs.ErrGeneration)
	}
	count := req.Count
	if count <= 0 {
		count = 5
	}

	var prompt strings.Builder
	prompt.WriteString("You are an expert at generating effective active recall questions from educational content.\n")
	prompt.WriteString("You identify key concepts and create questions that force learners to retrieve information from memory, strengthening neural pathways.\n\n")
	prompt.WriteString(fmt.Sprintf("DOCUMENT TITLE: %q\n\nDOCUMENT CONTENT:\n---\n%s\n---\n\n", req.DocumentTitle, req.DocumentContent))
	prompt.WriteString("Carefully analyze the document content to identify key concepts, facts, and relationships.\n")
	prompt.WriteString(fmt.Sprintf("Generate exactly %d active recall questions that require recall of important information and understanding of relationships between concepts.\n", count))
	prompt.WriteString("Format each question in markdown.\n")
	prompt.WriteString("Do not include answers, difficulty levels, or concept identifiers.\n")
	prompt.WriteString("Ensure questions cover the most important aspects of the content.\n\n")
	prompt.WriteString("Respond with a JSON array of strings, one question per element, and nothing else.\n")

	raw, err := s.generate(ctx, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrGeneration, err)
	}

	questions, err := parseStringList(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse question list from Gemini response")
		return nil, fmt.Errorf("%w: malformed question list: %v", errs.ErrGeneration, err)
	}
	// The service is not contractually guaranteed to honor the count; fail
	// fast instead of truncating or padding.
	if len(questions) != count {
		return nil, fmt.Errorf("%w: requested %d questions, got %d", errs.ErrGeneration, count, len(questions))
	}
	return questions, nil
}

func (s *geminiLLMService) GenerateExplanations(ctx context.Context, req ExplanationGenRequest) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", errs.ErrGeneration)
	}
	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions to explain", errs.ErrGeneration)
	}

	var prompt strings.Builder
	prompt.WriteString("You are an expert at generating comprehensive explanations for active recall questions.\n")
	prompt.WriteString("You not only provide the correct answer but also thoroughly explain WHY that answer is correct, grounded in the source material.\n\n")
	prompt.WriteString(fmt.Sprintf("DOCUMENT TITLE: %q\n\nDOCUMENT CONTENT:\n---\n%s\n---\n\n", req.DocumentTitle, req.DocumentContent))
	prompt.WriteString("QUESTIONS TO ANSWER:\n")
	for i, q := range req.Questions {
		prompt.WriteString(fmt.Sprintf("Question %d: %s\n", i+1, q))
	}
	prompt.WriteString("\nFor each question, search the document content for the relevant information, identify the correct answer, and formulate a clear educational explanation that states the correct answer AND explains in detail why it is correct, with supporting evidence from the source material.\n")
	prompt.WriteString("Generate explanations in the same order as the questions were provided.\n")
	prompt.WriteString("Base all explanations directly on information found in the source document.\n\n")
	prompt.WriteString("Respond with a JSON array of strings, one explanation per question in order, and nothing else.\n")

	raw, err := s.generate(ctx, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrGeneration, err)
	}

	explanations, err := parseStringList(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse explanation list from Gemini response")
		return nil, fmt.Errorf("%w: malformed explanation list: %v", errs.ErrGeneration, err)
	}
	// Index-for-index correspondence is a hard invariant; a mismatched
	// length would silently mis-pair questions and explanations.
	if len(explanations) != len(req.Questions) {
		return nil, fmt.Errorf("%w: %d questions but %d explanations", errs.ErrGeneration, len(req.Questions), len(explanations))
	}
	return explanations, nil
}

func (s *geminiLLMService) GradeAnswer(ctx context.Context, req GradingRequest) (*GradingResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: gemini client not initialized", errs.ErrGrading)
	}

	var prompt strings.Builder
	prompt.WriteString("You are an expert at evaluating learning responses against reference explanations.\n")
	prompt.WriteString("You provide fair and objective assessment focusing on conceptual understanding rather than exact wording.\n\n")
	prompt.WriteString(fmt.Sprintf("QUESTION: %q\n\nREFERENCE EXPLANATION: %q\n\nUSER ANSWER: %q\n\n", req.Question, req.Explanation, req.UserAnswer))
	prompt.WriteString("Identify the key concepts in the reference explanation that constitute a correct answer, then compare the user's answer against them.\n")
	prompt.WriteString("Assign a score of exactly 0, 0.5 or 1:\n")
	prompt.WriteString("0: The answer misses the key concepts or is fundamentally incorrect.\n")
	prompt.WriteString("0.5: The answer shows partial understanding but misses some key concepts.\n")
	prompt.WriteString("1: The answer demonstrates full understanding of the key concepts.\n\n")
	prompt.WriteString("Respond with a JSON object {\"score\": <0, 0.5 or 1>, \"markdown_score\": \"## Score: <score>\"} and nothing else.\n")

	raw, err := s.generate(ctx, prompt.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrGrading, err)
	}

	result, err := parseGradingResult(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse grading result from Gemini response")
		return nil, fmt.Errorf("%w: %v", errs.ErrGrading, err)
	}
	return result, nil
}

// generate performs one model call and concatenates the text parts of the
// first candidate.
func (s *geminiLLMService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.jsonModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error")
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text.String(), nil
}

// parseStringList decodes a JSON array of strings, tolerating a markdown
// code fence around the payload.
func parseStringList(raw string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &items); err != nil {
		return nil, fmt.Errorf("expected a JSON array of strings: %w", err)
	}
	return items, nil
}

func parseGradingResult(raw string) (*GradingResult, error) {
	var result GradingResult
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &result); err != nil {
		return nil, fmt.Errorf("expected a JSON grading object: %w", err)
	}
	if result.Score != 0 && result.Score != 0.5 && result.Score != 1 {
		return nil, fmt.Errorf("score %v is not one of 0, 0.5, 1", result.Score)
	}
	if result.MarkdownScore == "" {
		result.MarkdownScore = fmt.Sprintf("## Score: %g", result.Score)
	}
	return &result, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
