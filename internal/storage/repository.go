package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/models"
)

// Repository maps the event and exam collections onto a Provider,
// one JSON array per key.
type Repository struct {
	store Provider
}

func NewRepository(store Provider) *Repository {
	return &Repository{store: store}
}

// Store returns the underlying provider.
func (r *Repository) Store() Provider {
	return r.store
}

// LoadEvents never fails: a missing, unreadable or malformed entry yields an empty list.
func (r *Repository) LoadEvents() []models.Event {
	return loadCollection[models.Event](r.store, constants.EventsKey)
}

// SaveEvents overwrites the stored events, dropping generated recurrence
// occurrences. The caller's slice is left untouched.
func (r *Repository) SaveEvents(events []models.Event) error {
	persisted := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.GeneratedFromRecurring {
			continue
		}
		persisted = append(persisted, e)
	}
	return saveCollection(r.store, constants.EventsKey, persisted)
}

func (r *Repository) LoadExams() []models.Exam {
	return loadCollection[models.Exam](r.store, constants.ExamsKey)
}

func (r *Repository) SaveExams(exams []models.Exam) error {
	if exams == nil {
		exams = []models.Exam{}
	}
	return saveCollection(r.store, constants.ExamsKey, exams)
}

func loadCollection[T any](store Provider, key string) []T {
	raw, ok, err := store.Get(key)
	if err != nil {
		logger.Warn("Failed to read collection, treating as empty", "key", key, "error", err)
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Stored collection is malformed, treating as empty", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func saveCollection[T any](store Provider, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := store.Set(key, string(raw)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
