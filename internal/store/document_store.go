package store

import (
	"context"
	"io"
	"sync"

	"docuchat/client/internal/gateway"
	"docuchat/client/internal/interfaces"
	"docuchat/client/internal/model"
)

// PageSize is the fixed number of documents requested per list call. The
// client never paginates past the first page.
const PageSize = 100

// DocumentStore holds the uploaded-document catalog and the multi-select
// state. Selection has set semantics over document ids even though it is
// kept as an ordered slice.
type DocumentStore struct {
	gw interfaces.Gateway

	mu       sync.Mutex
	docs     []model.Document
	selected []string
	current  *model.Document
	lastErr  string
	listSeq  uint64
}

func NewDocumentStore(gw interfaces.Gateway) *DocumentStore {
	return &DocumentStore{gw: gw}
}

// FetchDocuments replaces the catalog, optionally filtered by category on
// the server. On failure the previous catalog is kept and the error is
// recorded.
func (s *DocumentStore) FetchDocuments(ctx context.Context, category string) error {
	s.mu.Lock()
	s.listSeq++
	seq := s.listSeq
	s.mu.Unlock()

	docs, err := s.gw.ListDocuments(ctx, category, PageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.listSeq {
		return nil
	}
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.docs = docs
	s.lastErr = ""
	return nil
}

// Upload sends the file and optional metadata, then prepends the record
// the server returns. Processing is asynchronous server-side; the store
// does not poll for completion.
func (s *DocumentStore) Upload(ctx context.Context, filename string, file io.Reader, meta gateway.DocumentMetadata) (*model.Document, error) {
	if err := validateInput(meta); err != nil {
		return nil, err
	}
	doc, err := s.gw.UploadDocument(ctx, filename, file, meta)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Lock()
	s.docs = append([]model.Document{*doc}, s.docs...)
	s.lastErr = ""
	s.mu.Unlock()
	return doc, nil
}

// OpenDocument fetches one record and makes it current.
func (s *DocumentStore) OpenDocument(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.gw.GetDocument(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Lock()
	selected := *doc
	s.current = &selected
	s.replaceInList(*doc)
	s.lastErr = ""
	s.mu.Unlock()
	return doc, nil
}

// ToggleSelection flips membership of id in the selection: present means
// remove, absent means append.
func (s *DocumentStore) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.selected {
		if existing == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, id)
}

// Update changes a document's descriptive fields and reconciles the fresh
// record into the catalog.
func (s *DocumentStore) Update(ctx context.Context, id string, meta gateway.DocumentMetadata) (*model.Document, error) {
	if err := validateInput(meta); err != nil {
		return nil, err
	}
	doc, err := s.gw.UpdateDocument(ctx, id, meta)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Lock()
	s.replaceInList(*doc)
	if s.current != nil && s.current.ID == doc.ID {
		updated := *doc
		s.current = &updated
	}
	s.lastErr = ""
	s.mu.Unlock()
	return doc, nil
}

// Reindex asks the server to rebuild a document's index and reconciles the
// record, which usually comes back with processed=false again.
func (s *DocumentStore) Reindex(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.gw.ReindexDocument(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Lock()
	s.replaceInList(*doc)
	if s.current != nil && s.current.ID == doc.ID {
		updated := *doc
		s.current = &updated
	}
	s.lastErr = ""
	s.mu.Unlock()
	return doc, nil
}

// Delete removes a document from the server, the catalog, the selection,
// and clears the current pointer when it matches, all in one transition.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteDocument(ctx, id); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.docs[:0]
	for _, doc := range s.docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	s.docs = kept
	for i, existing := range s.selected {
		if existing == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.lastErr = ""
	return nil
}

// Reset drops the catalog, selection, and current document. Called on
// sign-out.
func (s *DocumentStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	s.selected = nil
	s.current = nil
	s.lastErr = ""
	s.listSeq++
}

// Documents returns a copy of the catalog.
func (s *DocumentStore) Documents() []model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Document(nil), s.docs...)
}

// Selected returns a copy of the selected document ids in toggle order.
func (s *DocumentStore) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// IsSelected reports membership of id in the selection.
func (s *DocumentStore) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.selected {
		if existing == id {
			return true
		}
	}
	return false
}

// CurrentDocument returns a copy of the current document, or nil.
func (s *DocumentStore) CurrentDocument() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	doc := *s.current
	return &doc
}

// Err returns the last recorded error message for UI display.
func (s *DocumentStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// replaceInList swaps the catalog entry with the same id. Caller holds the
// lock.
func (s *DocumentStore) replaceInList(doc model.Document) {
	for i := range s.docs {
		if s.docs[i].ID == doc.ID {
			s.docs[i] = doc
			return
		}
	}
}
