package entity

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftSeed carries the agency identity and default strings a fresh draft
// starts from. It comes from configuration, not from the persisted draft.
type DraftSeed struct {
	Issuer   PartyInfo
	Currency Currency
	Notes    string
	Terms    string
}

// NewID generates a collision-resistant identifier for line items.
// Prefers a random UUID; if the system entropy source fails, falls back to a
// time+counter composite so ID generation itself can never abort an edit.
func NewID() string {
	u, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("it-%d-%04d", time.Now().UnixNano(), randomDigits(4))
	}
	return u.String()
}

// NewInvoiceNumber produces the default "INV-<year>-<4 digit random>" pattern.
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%04d", now.Year(), randomDigits(4))
}

// NewDefaultDraft builds a brand-new draft: issue date today, due date a week
// out, one seed line item, issuer prefilled from the seed, blank recipient,
// zero discount and tax. Pure given the clock.
func NewDefaultDraft(now time.Time, seed DraftSeed) InvoiceDraft {
	currency := seed.Currency
	if !currency.Valid() {
		currency = CurrencyUSD
	}
	issue := now.Format(DateLayout)
	due := now.AddDate(0, 0, 7).Format(DateLayout)

	return InvoiceDraft{
		Currency:      currency,
		LineStyle:     LineStyleDetailed,
		InvoiceNumber: NewInvoiceNumber(now),
		IssueDate:     issue,
		DueDate:       due,
		From:          seed.Issuer,
		To:            PartyInfo{},
		Items: []LineItem{
			{
				ID:          NewID(),
				Description: "",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.Zero,
			},
		},
		DiscountType:  DiscountPercent,
		DiscountValue: decimal.Zero,
		TaxRate:       decimal.Zero,
		Notes:         seed.Notes,
		Terms:         seed.Terms,
	}
}

// randomDigits returns a number in [0, 10^n) from the crypto source, falling
// back to the wall clock when the source is unavailable.
func randomDigits(n int) int64 {
	mod := int64(1)
	for i := 0; i < n; i++ {
		mod *= 10
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano() % mod
	}
	v := int64(binary.BigEndian.Uint64(buf[:]) >> 1) // keep it non-negative
	return v % mod
}
