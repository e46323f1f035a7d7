// Package audit records who changed which vocab or word, and what the
// background jobs did.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"

	"github.com/mrlokans/myvoca/internal/database/audit"
	"github.com/mrlokans/myvoca/internal/entities"
)

const maxErrorLen = 500

// Entry is the caller-supplied part of an audit event.
type Entry struct {
	UserID      uint
	EntityType  string // "vocab", "word", "stat", "definition"
	EntityID    uint
	Description string
	RequestID   string
	Metadata    map[string]any
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an event in the background; failures are only logged.
// It writes with a background context since request contexts end with the
// response. A nil Service discards the event.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(context.Background(), event); err != nil {
			log.Printf("Failed to log audit event %s: %v", event.Action, err)
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

func (s *Service) LogCreate(e Entry) {
	s.LogAsync(s.newEvent(entities.AuditEventCreate, e.EntityType+"_create", e, nil))
}

func (s *Service) LogUpdate(e Entry) {
	s.LogAsync(s.newEvent(entities.AuditEventUpdate, e.EntityType+"_update", e, nil))
}

func (s *Service) LogDelete(e Entry) {
	s.LogAsync(s.newEvent(entities.AuditEventDelete, e.EntityType+"_delete", e, nil))
}

// LogEnrich records a dictionary lookup for a word.
func (s *Service) LogEnrich(e Entry, err error) {
	e.EntityType = "word"
	s.LogAsync(s.newEvent(entities.AuditEventEnrich, "word_enrich", e, err))
}

// LogMaintenance records the outcome of a background job such as a count reconciliation.
func (s *Service) LogMaintenance(action, description string, metadata map[string]any, err error) {
	e := Entry{Description: description, Metadata: metadata}
	s.LogAsync(s.newEvent(entities.AuditEventMaintenance, action, e, err))
}

func (s *Service) ListEvents(ctx context.Context, f audit.Filter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.ListEvents(ctx, f, limit, offset)
}

// DeleteOldEvents removes events older than the retention window.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete audit events before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return deleted, nil
}

func (s *Service) newEvent(eventType entities.AuditEventType, action string, e Entry, err error) *entities.AuditEvent {
	event := &entities.AuditEvent{
		UserID:      e.UserID,
		EventType:   eventType,
		Action:      action,
		Description: truncate(e.Description, 500),
		EntityType:  e.EntityType,
		RequestID:   e.RequestID,
		Status:      entities.AuditStatusSuccess,
	}
	if e.EntityID > 0 {
		id := e.EntityID
		event.EntityID = &id
	}
	if len(e.Metadata) > 0 {
		if md, mErr := json.Marshal(e.Metadata); mErr == nil {
			event.Metadata = datatypes.JSON(md)
		}
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), maxErrorLen)
	}
	return event
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// never split a multi-byte rune
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
