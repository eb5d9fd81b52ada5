package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ptmai/recallify/internal/errs"
	"github.com/ptmai/recallify/internal/model"
	"github.com/ptmai/recallify/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDocument(t *testing.T) {
	docRepo := newStubDocumentRepo()
	svc := NewDocumentService(docRepo, newTestStore(t))

	document, err := svc.CreateDocument("lecture-notes", "/tmp/lecture-notes.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, document.ID)
	assert.Equal(t, "lecture-notes", document.Title)
	assert.Equal(t, "/tmp/lecture-notes.pdf", document.FilePath)
}

func TestListDocumentsCountsQuestions(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), Title: "Cell Biology", FilePath: "/tmp/cells.pdf", PageCount: 4}
	docRepo := newStubDocumentRepo(doc)
	questionStore := newTestStore(t)
	require.NoError(t, questionStore.SaveQuestions([]*store.QuestionRecord{
		{QuestionID: uuid.NewString(), DocumentID: doc.ID.String(), QuestionText: "q1"},
		{QuestionID: uuid.NewString(), DocumentID: doc.ID.String(), QuestionText: "q2"},
	}))

	svc := NewDocumentService(docRepo, questionStore)
	resp, err := svc.ListDocuments()
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, doc.ID.String(), resp.Documents[0].DocumentID)
	assert.Equal(t, "Cell Biology", resp.Documents[0].Title)
	assert.Equal(t, 4, resp.Documents[0].PageCount)
	assert.Equal(t, 2, resp.Documents[0].QuestionsCount)
}

func TestListDocumentsEmpty(t *testing.T) {
	svc := NewDocumentService(newStubDocumentRepo(), newTestStore(t))
	resp, err := svc.ListDocuments()
	require.NoError(t, err)
	assert.NotNil(t, resp.Documents)
	assert.Empty(t, resp.Documents)
}

func TestGetDocumentDetail(t *testing.T) {
	doc := &model.Document{ID: uuid.New(), FilePath: "/tmp/untitled.pdf"}
	docRepo := newStubDocumentRepo(doc)
	questionStore := newTestStore(t)
	require.NoError(t, questionStore.SaveQuestion(&store.QuestionRecord{
		QuestionID:   uuid.NewString(),
		DocumentID:   doc.ID.String(),
		QuestionText: "q1",
	}))

	svc := NewDocumentService(docRepo, questionStore)
	detail, err := svc.GetDocument(doc.ID)
	require.NoError(t, err)
	// Empty titles render with the fallback.
	assert.Equal(t, "Untitled Document", detail.Title)
	require.Len(t, detail.Questions, 1)
	assert.Equal(t, "q1", detail.Questions[0].QuestionText)
}

func TestGetDocumentUnknown(t *testing.T) {
	svc := NewDocumentService(newStubDocumentRepo(), newTestStore(t))
	_, err := svc.GetDocument(uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
