package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_knowledge_base_service.go -package=mocks mdkb/internal/service KnowledgeBaseService

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mdkb/internal/contextutil"
	"mdkb/internal/indexer"
	"mdkb/internal/storage"
)

// DocumentImporter builds a Document from a file without persisting it.
// This interface is defined from the service layer's perspective (consumer-first).
type DocumentImporter interface {
	Import(ctx context.Context, kbID, path string) (storage.Document, error)
}

// KnowledgeBaseService manages knowledge bases and their documents.
type KnowledgeBaseService interface {
	// CreateKnowledgeBase appends a new, empty knowledge base.
	CreateKnowledgeBase(ctx context.Context, name, description string) (storage.KnowledgeBase, error)
	// ListKnowledgeBases returns all knowledge bases in insertion order.
	ListKnowledgeBases(ctx context.Context) ([]storage.KnowledgeBase, error)
	// GetKnowledgeBase returns the knowledge base with id; found is false if there is none.
	GetKnowledgeBase(ctx context.Context, id string) (kb storage.KnowledgeBase, found bool, err error)
	// DeleteKnowledgeBase removes a knowledge base and all of its documents.
	// Deleting an unknown id succeeds.
	DeleteKnowledgeBase(ctx context.Context, id string) error
	// ImportDocument imports one file and refreshes the owner's document count.
	ImportDocument(ctx context.Context, kbID, path string) (storage.Document, error)
	// ImportDocuments imports each path independently. Failures are logged and
	// skipped; the successfully imported documents are returned in input order.
	ImportDocuments(ctx context.Context, kbID string, paths []string) []storage.Document
	// GetDocuments returns the documents of a knowledge base in insertion order.
	GetDocuments(ctx context.Context, kbID string) ([]storage.Document, error)
	// GetDocument returns the document with id; found is false if there is none.
	GetDocument(ctx context.Context, id string) (doc storage.Document, found bool, err error)
	// DeleteDocument removes a document and refreshes the owner's document count.
	// Deleting an unknown id succeeds.
	DeleteDocument(ctx context.Context, id string) error
	// Stats summarises the documents of a knowledge base; found is false if it does not exist.
	Stats(ctx context.Context, kbID string) (stats indexer.CoverageStats, found bool, err error)
}

// knowledgeBaseService implements KnowledgeBaseService on top of a SnapshotStore.
// Every mutating call loads the whole snapshot, changes it in memory and saves it back.
type knowledgeBaseService struct {
	store    storage.SnapshotStore
	importer DocumentImporter
	newID    func() string
	now      func() time.Time
}

// NewKnowledgeBaseService creates a new KnowledgeBaseService.
func NewKnowledgeBaseService(store storage.SnapshotStore, importer DocumentImporter) KnowledgeBaseService {
	return &knowledgeBaseService{
		store:    store,
		importer: importer,
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// getLogger extracts logger from context or returns default logger.
func (s *knowledgeBaseService) getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}

func (s *knowledgeBaseService) load(ctx context.Context) (*storage.Snapshot, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load")
	}
	return snap, nil
}

func (s *knowledgeBaseService) save(ctx context.Context, snap *storage.Snapshot) error {
	if err := s.store.Save(ctx, snap); err != nil {
		return storeError(err, "failed to save")
	}
	return nil
}

// CreateKnowledgeBase appends a new, empty knowledge base.
func (s *knowledgeBaseService) CreateKnowledgeBase(ctx context.Context, name, description string) (storage.KnowledgeBase, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return storage.KnowledgeBase{}, err
	}

	now := s.now()
	kb := storage.KnowledgeBase{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	snap.KnowledgeBases = append(snap.KnowledgeBases, kb)

	if err := s.save(ctx, snap); err != nil {
		return storage.KnowledgeBase{}, err
	}

	s.getLogger(ctx).InfoContext(ctx, "created knowledge base", "kb_id", kb.ID, "name", name)
	return kb, nil
}

// ListKnowledgeBases returns all knowledge bases in insertion order.
func (s *knowledgeBaseService) ListKnowledgeBases(ctx context.Context) ([]storage.KnowledgeBase, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.KnowledgeBases, nil
}

// GetKnowledgeBase returns the knowledge base with id.
func (s *knowledgeBaseService) GetKnowledgeBase(ctx context.Context, id string) (storage.KnowledgeBase, bool, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return storage.KnowledgeBase{}, false, err
	}
	if i := indexOfKnowledgeBase(snap, id); i >= 0 {
		return snap.KnowledgeBases[i], true, nil
	}
	return storage.KnowledgeBase{}, false, nil
}

// DeleteKnowledgeBase removes a knowledge base and cascades to its documents.
func (s *knowledgeBaseService) DeleteKnowledgeBase(ctx context.Context, id string) error {
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}

	kbs := snap.KnowledgeBases[:0]
	for _, kb := range snap.KnowledgeBases {
		if kb.ID != id {
			kbs = append(kbs, kb)
		}
	}
	removedKB := len(kbs) != len(snap.KnowledgeBases)
	snap.KnowledgeBases = kbs

	docs := snap.Documents[:0]
	for _, doc := range snap.Documents {
		if doc.KBID != id {
			docs = append(docs, doc)
		}
	}
	removedDocs := len(snap.Documents) - len(docs)
	snap.Documents = docs

	if !removedKB && removedDocs == 0 {
		return nil
	}

	if err := s.save(ctx, snap); err != nil {
		return err
	}

	s.getLogger(ctx).InfoContext(ctx, "deleted knowledge base", "kb_id", id, "documents_removed", removedDocs)
	return nil
}

// ImportDocument imports one file into a knowledge base.
// An unknown kbID is accepted: the document is stored and a warning is logged.
func (s *knowledgeBaseService) ImportDocument(ctx context.Context, kbID, path string) (storage.Document, error) {
	logger := s.getLogger(ctx)

	doc, err := s.importer.Import(ctx, kbID, path)
	if err != nil {
		return storage.Document{}, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return storage.Document{}, err
	}

	snap.Documents = append(snap.Documents, doc)
	if !refreshDocumentCount(snap, kbID, s.now()) {
		logger.WarnContext(ctx, "document imported into unknown knowledge base", "kb_id", kbID, "path", path)
	}

	if err := s.save(ctx, snap); err != nil {
		return storage.Document{}, err
	}

	logger.InfoContext(ctx, "imported document", "kb_id", kbID, "doc_id", doc.ID, "path", path, "chunks", len(doc.Chunks))
	return doc, nil
}

// ImportDocuments imports each path, skipping the ones that fail.
func (s *knowledgeBaseService) ImportDocuments(ctx context.Context, kbID string, paths []string) []storage.Document {
	logger := s.getLogger(ctx)
	docs := make([]storage.Document, 0, len(paths))

	var errorCount int
	for _, path := range paths {
		doc, err := s.ImportDocument(ctx, kbID, path)
		if err != nil {
			errorCount++
			logger.WarnContext(ctx, "failed to import document", "path", path, "error", err)
			continue
		}
		docs = append(docs, doc)
	}

	logger.InfoContext(ctx, "import completed", "kb_id", kbID, "total", len(paths), "success", len(docs), "errors", errorCount)
	return docs
}

// GetDocuments returns the documents of a knowledge base.
func (s *knowledgeBaseService) GetDocuments(ctx context.Context, kbID string) ([]storage.Document, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return documentsOf(snap, kbID), nil
}

// GetDocument returns the document with id.
func (s *knowledgeBaseService) GetDocument(ctx context.Context, id string) (storage.Document, bool, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return storage.Document{}, false, err
	}
	for _, doc := range snap.Documents {
		if doc.ID == id {
			return doc, true, nil
		}
	}
	return storage.Document{}, false, nil
}

// DeleteDocument removes a document and refreshes its owner's count.
func (s *knowledgeBaseService) DeleteDocument(ctx context.Context, id string) error {
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}

	var kbID string
	found := false
	docs := snap.Documents[:0]
	for _, doc := range snap.Documents {
		if doc.ID == id {
			kbID = doc.KBID
			found = true
			continue
		}
		docs = append(docs, doc)
	}
	snap.Documents = docs

	if !found {
		return nil
	}

	refreshDocumentCount(snap, kbID, s.now())

	if err := s.save(ctx, snap); err != nil {
		return err
	}

	s.getLogger(ctx).InfoContext(ctx, "deleted document", "doc_id", id, "kb_id", kbID)
	return nil
}

// Stats summarises the documents of a knowledge base.
func (s *knowledgeBaseService) Stats(ctx context.Context, kbID string) (indexer.CoverageStats, bool, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return indexer.CoverageStats{}, false, err
	}
	if indexOfKnowledgeBase(snap, kbID) < 0 {
		return indexer.CoverageStats{}, false, nil
	}
	return indexer.ComputeStats(documentsOf(snap, kbID)), true, nil
}

func indexOfKnowledgeBase(snap *storage.Snapshot, id string) int {
	for i := range snap.KnowledgeBases {
		if snap.KnowledgeBases[i].ID == id {
			return i
		}
	}
	return -1
}

func documentsOf(snap *storage.Snapshot, kbID string) []storage.Document {
	docs := []storage.Document{}
	for _, doc := range snap.Documents {
		if doc.KBID == kbID {
			docs = append(docs, doc)
		}
	}
	return docs
}

// refreshDocumentCount recounts the documents of kbID by a full scan and bumps
// its UpdatedAt. It reports false if the knowledge base does not exist.
func refreshDocumentCount(snap *storage.Snapshot, kbID string, now time.Time) bool {
	i := indexOfKnowledgeBase(snap, kbID)
	if i < 0 {
		return false
	}

	count := 0
	for _, doc := range snap.Documents {
		if doc.KBID == kbID {
			count++
		}
	}
	snap.KnowledgeBases[i].DocumentCount = count
	snap.KnowledgeBases[i].UpdatedAt = now
	return true
}
