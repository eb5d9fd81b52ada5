package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/config"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/model"
	"github.com/ptmai/recallify/internal/pdf"
	"github.com/ptmai/recallify/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDocumentRepo keeps documents in a map, enough for pipeline tests.
type stubDocumentRepo struct {
	documents map[uuid.UUID]*model.Document
}

func newStubDocumentRepo(docs ...*model.Document) *stubDocumentRepo {
	r := &stubDocumentRepo{documents: make(map[uuid.UUID]*model.Document)}
	for _, d := range docs {
		r.documents[d.ID] = d
	}
	return r
}

func (r *stubDocumentRepo) Create(document *model.Document) error {
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	r.documents[document.ID] = document
	return nil
}

func (r *stubDocumentRepo) Update(document *model.Document) error {
	r.documents[document.ID] = document
	return nil
}

func (r *stubDocumentRepo) FindByID(id uuid.UUID) (*model.Document, error) {
	return r.documents[id], nil
}

func (r *stubDocumentRepo) FindByIDWithQuestions(id uuid.UUID) (*model.Document, error) {
	return r.documents[id], nil
}

func (r *stubDocumentRepo) FindAll() ([]model.Document, error) {
	var all []model.Document
	for _, d := range r.documents {
		all = append(all, *d)
	}
	return all, nil
}

func (r *stubDocumentRepo) Delete(id uuid.UUID) error {
	delete(r.documents, id)
	return nil
}

// stubExtractor returns a canned extraction result without touching the disk.
type stubExtractor struct {
	result *pdf.Result
	err    error
}

func (e *stubExtractor) Extract(filePath string, pages []int) (*pdf.Result, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

// stubLLM yields scripted responses for each generation step.
type stubLLM struct {
	questions      []string
	questionsErr   error
	explanations   []string
	explanationErr error
	grading        *GradingResult
	gradingErr     error
}

func (l *stubLLM) GenerateQuestions(ctx context.Context, req QuestionGenRequest) ([]string, error) {
	return l.questions, l.questionsErr
}

func (l *stubLLM) GenerateExplanations(ctx context.Context, req ExplanationGenRequest) ([]string, error) {
	return l.explanations, l.explanationErr
}

func (l *stubLLM) GradeAnswer(ctx context.Context, req GradingRequest) (*GradingResult, error) {
	return l.grading, l.gradingErr
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "questions"))
	require.NoError(t, err)
	return s
}

func testConfig() *config.Config {
	return &config.Config{QuestionCount: 3}
}

func extractionFixture() *pdf.Result {
	title := "Cell Biology"
	return &pdf.Result{
		Content:        "Mitochondria produce ATP.\n\nRibosomes synthesize proteins.",
		PagesExtracted: []int{1, 2},
		Metadata:       pdf.Metadata{Title: &title, NumPages: 2},
	}
}

func TestProcessDocumentHappyPath(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), FilePath: "/tmp/cells.pdf"}
	docRepo := newStubDocumentRepo(doc)
	questionStore := newTestStore(t)
	llm := &stubLLM{
		questions:    []string{"What do mitochondria produce?", "What do ribosomes do?", "Name two organelles."},
		explanations: []string{"ATP, the cell's energy currency.", "They synthesize proteins.", "Mitochondria and ribosomes."},
	}

	svc := NewRecallService(docRepo, &stubExtractor{result: extractionFixture()}, llm, questionStore, testConfig())
	records, err := svc.ProcessDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Extraction results land on the document.
	assert.Equal(t, "Cell Biology", doc.Title)
	assert.Equal(t, 2, doc.PageCount)
	assert.Contains(t, doc.Content, "Mitochondria")

	// Questions pair with their explanations index for index.
	for i, rec := range records {
		assert.NotEmpty(t, rec.QuestionID)
		assert.Equal(t, doc.ID.String(), rec.DocumentID)
		assert.Equal(t, llm.questions[i], rec.QuestionText)
		assert.Equal(t, llm.explanations[i], rec.Explanation)
	}

	// And they are persisted.
	stored, err := questionStore.ListQuestions(doc.ID.String())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestProcessDocumentUnknownDocument(t *testing.T) {
	svc := NewRecallService(newStubDocumentRepo(), &stubExtractor{result: extractionFixture()}, &stubLLM{}, newTestStore(t), testConfig())
	_, err := svc.ProcessDocument(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProcessDocumentExtractionFailure(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), FilePath: "/tmp/broken.pdf"}
	docRepo := newStubDocumentRepo(doc)
	extractor := &stubExtractor{err: fmt.Errorf("%w: broken file", errs.ErrExtraction)}

	svc := NewRecallService(docRepo, extractor, &stubLLM{}, newTestStore(t), testConfig())
	_, err := svc.ProcessDocument(context.Background(), doc.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrExtraction)
	assert.Empty(t, doc.Content, "failed extraction must not mutate the document")
}

func TestProcessDocumentGenerationFailureKeepsContent(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), FilePath: "/tmp/cells.pdf"}
	docRepo := newStubDocumentRepo(doc)
	questionStore := newTestStore(t)
	llm := &stubLLM{questionsErr: fmt.Errorf("%w: requested 3 questions, got 2", errs.ErrGeneration)}

	svc := NewRecallService(docRepo, &stubExtractor{result: extractionFixture()}, llm, questionStore, testConfig())
	_, err := svc.ProcessDocument(context.Background(), doc.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrGeneration)

	// The extracted text survives the failed generation, with no questions.
	assert.Contains(t, doc.Content, "Mitochondria")
	stored, storeErr := questionStore.ListQuestions(doc.ID.String())
	require.NoError(t, storeErr)
	assert.Empty(t, stored)
}

func TestProcessDocumentBlankMiddlePage(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), FilePath: "/tmp/sparse.pdf"}
	docRepo := newStubDocumentRepo(doc)

	// A page with no text still contributes its separator slot.
	result := &pdf.Result{
		Content:        "First page text.\n\n\n\nThird page text.",
		PagesExtracted: []int{1, 2, 3},
		Metadata:       pdf.Metadata{NumPages: 3},
	}
	var seenContent string
	llm := &contentCapturingLLM{capture: &seenContent}

	svc := NewRecallService(docRepo, &stubExtractor{result: result}, llm, newTestStore(t), testConfig())
	_, err := svc.ProcessDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Content, doc.Content)
	assert.Equal(t, result.Content, seenContent)
	assert.Equal(t, 3, doc.PageCount)
}

type contentCapturingLLM struct {
	capture *string
}

func (l *contentCapturingLLM) GenerateQuestions(ctx context.Context, req QuestionGenRequest) ([]string, error) {
	*l.capture = req.DocumentContent
	questions := make([]string, req.Count)
	for i := range questions {
		questions[i] = fmt.Sprintf("question %d", i+1)
	}
	return questions, nil
}

func (l *contentCapturingLLM) GenerateExplanations(ctx context.Context, req ExplanationGenRequest) ([]string, error) {
	explanations := make([]string, len(req.Questions))
	for i := range explanations {
		explanations[i] = fmt.Sprintf("explanation %d", i+1)
	}
	return explanations, nil
}

func (l *contentCapturingLLM) GradeAnswer(ctx context.Context, req GradingRequest) (*GradingResult, error) {
	return &GradingResult{Score: 1, MarkdownScore: "## Score: 1"}, nil
}

func TestProcessDocumentUntitledFallback(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), FilePath: "/tmp/untitled.pdf"}
	docRepo := newStubDocumentRepo(doc)

	var seenTitle string
	llm := &titleCapturingLLM{capture: &seenTitle}
	result := extractionFixture()
	result.Metadata.Title = nil

	svc := NewRecallService(docRepo, &stubExtractor{result: result}, llm, newTestStore(t), testConfig())
	_, err := svc.ProcessDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Document", seenTitle)
}

type titleCapturingLLM struct {
	capture *string
}

func (l *titleCapturingLLM) GenerateQuestions(ctx context.Context, req QuestionGenRequest) ([]string, error) {
	*l.capture = req.DocumentTitle
	questions := make([]string, req.Count)
	for i := range questions {
		questions[i] = fmt.Sprintf("question %d", i+1)
	}
	return questions, nil
}

func (l *titleCapturingLLM) GenerateExplanations(ctx context.Context, req ExplanationGenRequest) ([]string, error) {
	explanations := make([]string, len(req.Questions))
	for i := range explanations {
		explanations[i] = fmt.Sprintf("explanation %d", i+1)
	}
	return explanations, nil
}

func (l *titleCapturingLLM) GradeAnswer(ctx context.Context, req GradingRequest) (*GradingResult, error) {
	return &GradingResult{Score: 1, MarkdownScore: "## Score: 1"}, nil
}
