// Package draft owns the lifecycle of the single editable invoice draft:
// load-with-defensive-merge, edits, save, reset.
package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/domain/invoice"
	"github.com/grayvally/invoicer-api/internal/domain/repository"
	"github.com/grayvally/invoicer-api/pkg/logger"
	"github.com/grayvally/invoicer-api/pkg/money"
)

// StorageKey is the namespaced key the serialized draft lives under.
// Versioned by suffix; migrations are the per-field fallback in Merge.
const StorageKey = "grayvally.invoice.draft.v1"

// Service holds the current draft in memory and mediates every mutation.
// There is one logical actor (the agency operator), so semantics are simply
// "latest edit wins"; the mutex only keeps interleaved HTTP handlers safe.
type Service struct {
	mu      sync.Mutex
	store   repository.KVStore
	seed    entity.DraftSeed
	current entity.InvoiceDraft
	log     *logger.Logger
}

// NewService builds the service and loads the initial draft: the persisted
// snapshot when one parses, otherwise fresh defaults. A broken or unreadable
// snapshot is never surfaced as an error.
func NewService(ctx context.Context, store repository.KVStore, seed entity.DraftSeed, log *logger.Logger) *Service {
	s := &Service{store: store, seed: seed, log: log}
	s.current = s.load(ctx)
	return s
}

func (s *Service) defaults() entity.InvoiceDraft {
	return entity.NewDefaultDraft(time.Now(), s.seed)
}

func (s *Service) load(ctx context.Context) entity.InvoiceDraft {
	defaults := s.defaults()

	raw, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		if err != domain.ErrNotFound {
			s.log.Warn().Err(err).Msg("draft: read from store failed, starting from defaults")
		}
		return defaults
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.log.Warn().Err(err).Msg("draft: stored snapshot is not valid JSON, starting from defaults")
		return defaults
	}
	return Merge(record, defaults)
}

// Current returns a copy of the in-memory draft.
func (s *Service) Current() entity.InvoiceDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update applies the provided fields to the draft. Enum fields go through the
// same sanitizers as the persistence merge; numeric fields are coerced with
// non-numeric input collapsing to zero, then clamped at zero. Dates must be
// ISO (YYYY-MM-DD) to be accepted; no ordering between issue and due date is
// enforced.
func (s *Service) Update(in dto.UpdateDraftRequest) entity.InvoiceDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &s.current
	if in.Currency != nil && entity.Currency(*in.Currency).Valid() {
		d.Currency = entity.Currency(*in.Currency)
	}
	if in.LineStyle != nil {
		d.LineStyle = sanitizeLineStyle(*in.LineStyle)
	}
	if in.InvoiceNumber != nil {
		d.InvoiceNumber = *in.InvoiceNumber
	}
	if in.IssueDate != nil {
		if _, err := time.Parse(entity.DateLayout, *in.IssueDate); err == nil {
			d.IssueDate = *in.IssueDate
		}
	}
	if in.DueDate != nil {
		if _, err := time.Parse(entity.DateLayout, *in.DueDate); err == nil {
			d.DueDate = *in.DueDate
		}
	}
	if in.From != nil {
		applyParty(&d.From, in.From)
	}
	if in.To != nil {
		applyParty(&d.To, in.To)
	}
	if in.DiscountType != nil {
		d.DiscountType = sanitizeDiscountType(*in.DiscountType)
	}
	if in.DiscountValue != nil {
		d.DiscountValue = money.ClampNonNegative(money.ToDecimal(in.DiscountValue, decimal.Zero))
	}
	if in.TaxRate != nil {
		d.TaxRate = money.ClampNonNegative(money.ToDecimal(in.TaxRate, decimal.Zero))
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	if in.Terms != nil {
		d.Terms = *in.Terms
	}

	return s.current.Clone()
}

// AddItem appends a new line item.
func (s *Service) AddItem(in dto.LineItemRequest) entity.InvoiceDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := entity.LineItem{
		ID:        entity.NewID(),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
	}
	applyItem(&item, in)
	s.current.Items = append(s.current.Items, item)
	return s.current.Clone()
}

// UpdateItem edits one line item in place. Returns domain.ErrNotFound when no
// item carries the given id.
func (s *Service) UpdateItem(id string, in dto.LineItemRequest) (entity.InvoiceDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.current.Items {
		if s.current.Items[i].ID == id {
			applyItem(&s.current.Items[i], in)
			return s.current.Clone(), nil
		}
	}
	return entity.InvoiceDraft{}, domain.ErrNotFound
}

// RemoveItem deletes a line item. Removing the sole remaining item is a
// no-op: the list never drops below one element. An unknown id is also a
// no-op. Either way the (possibly unchanged) draft is returned.
func (s *Service) RemoveItem(id string) entity.InvoiceDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.current.Items) <= 1 {
		return s.current.Clone()
	}
	for i := range s.current.Items {
		if s.current.Items[i].ID == id {
			s.current.Items = append(s.current.Items[:i], s.current.Items[i+1:]...)
			break
		}
	}
	return s.current.Clone()
}

// Totals returns a snapshot of the draft together with its computed totals.
func (s *Service) Totals() (entity.InvoiceDraft, invoice.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.current.Clone()
	return d, invoice.ComputeTotals(d.Items, d.DiscountType, d.DiscountValue, d.TaxRate)
}

// Save persists whatever is currently in memory. Storage failures are
// swallowed: editing must continue unaffected, so the error is only logged.
func (s *Service) Save(ctx context.Context) {
	s.mu.Lock()
	snapshot := s.current.Clone()
	s.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("draft: serialize for save failed")
		return
	}
	if err := s.store.Set(ctx, StorageKey, string(data)); err != nil {
		s.log.Warn().Err(err).Msg("draft: save to store failed")
	}
}

// Reset replaces the draft with fresh defaults and clears the persisted
// entry. Removal failures are swallowed like save failures.
func (s *Service) Reset(ctx context.Context) entity.InvoiceDraft {
	s.mu.Lock()
	s.current = s.defaults()
	fresh := s.current.Clone()
	s.mu.Unlock()

	if err := s.store.Remove(ctx, StorageKey); err != nil {
		s.log.Warn().Err(err).Msg("draft: clear persisted entry failed")
	}
	return fresh
}

func applyParty(p *entity.PartyInfo, in *dto.PartyUpdate) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.Email != nil {
		p.Email = *in.Email
	}
	if in.Phone != nil {
		p.Phone = *in.Phone
	}
	if in.Website != nil {
		p.Website = *in.Website
	}
	if in.TaxID != nil {
		p.TaxID = *in.TaxID
	}
}

func applyItem(item *entity.LineItem, in dto.LineItemRequest) {
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Quantity != nil {
		item.Quantity = money.ClampNonNegative(money.ToDecimal(in.Quantity, decimal.Zero))
	}
	if in.UnitPrice != nil {
		item.UnitPrice = money.ClampNonNegative(money.ToDecimal(in.UnitPrice, decimal.Zero))
	}
}
