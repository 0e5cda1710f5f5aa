package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/tendant/localized-content/pkg/localizedcontent"
)

// Repository implements localizedcontent.Repository for one family using
// in-memory maps.
type Repository[G, T any] struct {
	mu           sync.RWMutex
	generals     map[uuid.UUID]*localizedcontent.General[G]
	translations map[uuid.UUID]*localizedcontent.Translation[T]
}

// New creates a new in-memory repository.
func New[G, T any]() *Repository[G, T] {
	return &Repository[G, T]{
		generals:     make(map[uuid.UUID]*localizedcontent.General[G]),
		translations: make(map[uuid.UUID]*localizedcontent.Translation[T]),
	}
}

// General operations

func (r *Repository[G, T]) CreateGeneral(ctx context.Context, general *localizedcontent.General[G]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if general.Key != "" {
		for _, g := range r.generals {
			if g.Key == general.Key {
				return localizedcontent.ErrGeneralExists
			}
		}
	}

	// Store a copy to avoid external modifications.
	generalCopy := *general
	r.generals[general.ID] = &generalCopy

	return nil
}

func (r *Repository[G, T]) GetGeneral(ctx context.Context, id uuid.UUID) (*localizedcontent.General[G], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	general, exists := r.generals[id]
	if !exists {
		return nil, localizedcontent.ErrGeneralNotFound
	}

	generalCopy := *general
	return &generalCopy, nil
}

func (r *Repository[G, T]) GetSingletonGeneral(ctx context.Context) (*localizedcontent.General[G], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var oldest *localizedcontent.General[G]
	for _, general := range r.generals {
		if oldest == nil || general.CreatedAt.Before(oldest.CreatedAt) {
			oldest = general
		}
	}
	if oldest == nil {
		return nil, localizedcontent.ErrGeneralNotFound
	}

	generalCopy := *oldest
	return &generalCopy, nil
}

func (r *Repository[G, T]) FindGeneralByKey(ctx context.Context, key string) (*localizedcontent.General[G], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if key == "" {
		return nil, localizedcontent.ErrGeneralNotFound
	}
	for _, general := range r.generals {
		if general.Key == key {
			generalCopy := *general
			return &generalCopy, nil
		}
	}

	return nil, localizedcontent.ErrGeneralNotFound
}

func (r *Repository[G, T]) ListGenerals(ctx context.Context) ([]*localizedcontent.General[G], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*localizedcontent.General[G], 0, len(r.generals))
	for _, general := range r.generals {
		generalCopy := *general
		result = append(result, &generalCopy)
	}
	slices.SortFunc(result, func(a, b *localizedcontent.General[G]) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return result, nil
}

func (r *Repository[G, T]) UpdateGeneral(ctx context.Context, general *localizedcontent.General[G]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generals[general.ID]; !exists {
		return localizedcontent.ErrGeneralNotFound
	}
	if general.Key != "" {
		for id, g := range r.generals {
			if id != general.ID && g.Key == general.Key {
				return localizedcontent.ErrGeneralExists
			}
		}
	}

	generalCopy := *general
	r.generals[general.ID] = &generalCopy

	return nil
}

func (r *Repository[G, T]) DeleteGeneral(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generals[id]; !exists {
		return localizedcontent.ErrGeneralNotFound
	}
	delete(r.generals, id)

	return nil
}

// Translation operations

func (r *Repository[G, T]) CreateTranslation(ctx context.Context, translation *localizedcontent.Translation[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tr := range r.translations {
		if tr.GeneralID == translation.GeneralID && tr.Locale == translation.Locale {
			return localizedcontent.ErrTranslationExists
		}
	}

	translationCopy := *translation
	r.translations[translation.ID] = &translationCopy

	return nil
}

func (r *Repository[G, T]) GetTranslation(ctx context.Context, generalID uuid.UUID, locale localizedcontent.Locale) (*localizedcontent.Translation[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tr := range r.translations {
		if tr.GeneralID == generalID && tr.Locale == locale {
			translationCopy := *tr
			return &translationCopy, nil
		}
	}

	return nil, localizedcontent.ErrTranslationNotFound
}

func (r *Repository[G, T]) UpdateTranslation(ctx context.Context, translation *localizedcontent.Translation[T]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.translations[translation.ID]; !exists {
		return localizedcontent.ErrTranslationNotFound
	}

	translationCopy := *translation
	r.translations[translation.ID] = &translationCopy

	return nil
}

func (r *Repository[G, T]) DeleteTranslation(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.translations[id]; !exists {
		return localizedcontent.ErrTranslationNotFound
	}
	delete(r.translations, id)

	return nil
}

func (r *Repository[G, T]) ListTranslations(ctx context.Context) ([]*localizedcontent.Translation[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*localizedcontent.Translation[T], 0, len(r.translations))
	for _, tr := range r.translations {
		translationCopy := *tr
		result = append(result, &translationCopy)
	}
	sortByCreatedAt(result)

	return result, nil
}

func (r *Repository[G, T]) ListTranslationsByGeneral(ctx context.Context, generalID uuid.UUID) ([]*localizedcontent.Translation[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*localizedcontent.Translation[T]
	for _, tr := range r.translations {
		if tr.GeneralID == generalID {
			translationCopy := *tr
			result = append(result, &translationCopy)
		}
	}
	sortByCreatedAt(result)

	return result, nil
}

func (r *Repository[G, T]) ListTranslationsByLocale(ctx context.Context, locale localizedcontent.Locale) ([]*localizedcontent.Translation[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*localizedcontent.Translation[T]
	for _, tr := range r.translations {
		if tr.Locale == locale {
			translationCopy := *tr
			result = append(result, &translationCopy)
		}
	}
	sortByCreatedAt(result)

	return result, nil
}

func (r *Repository[G, T]) CountTranslations(ctx context.Context, generalID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, tr := range r.translations {
		if tr.GeneralID == generalID {
			count++
		}
	}

	return count, nil
}

func sortByCreatedAt[T any](translations []*localizedcontent.Translation[T]) {
	slices.SortFunc(translations, func(a, b *localizedcontent.Translation[T]) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
