package draft

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/pkg/money"
)

// Merge rebuilds a valid draft from an untyped record (a parsed but possibly
// partial or corrupted persisted snapshot), falling back to defaults field by
// field. It is a pure function: storage never sees it, which keeps every
// corruption case unit-testable without a backend.
//
// Rules:
//   - every top-level field defaults independently when missing or wrong-shaped
//   - items must come back as a non-empty list of well-typed line items, each
//     element re-validated; otherwise the default seed item is substituted
//   - discountType must be exactly "fixed" to survive, anything else becomes
//     "percent"; lineStyle must be exactly "simple", anything else "detailed"
//   - unknown currency codes collapse to the default draft's currency
//   - dates must parse as YYYY-MM-DD, otherwise the default date is kept
func Merge(raw map[string]any, defaults entity.InvoiceDraft) entity.InvoiceDraft {
	if raw == nil {
		return defaults
	}
	out := defaults

	if c, ok := stringField(raw, "currency"); ok && entity.Currency(c).Valid() {
		out.Currency = entity.Currency(c)
	}
	if s, ok := stringField(raw, "lineStyle"); ok {
		out.LineStyle = sanitizeLineStyle(s)
	}
	if s, ok := stringField(raw, "invoiceNumber"); ok {
		out.InvoiceNumber = s
	}
	if s, ok := dateField(raw, "issueDate"); ok {
		out.IssueDate = s
	}
	if s, ok := dateField(raw, "dueDate"); ok {
		out.DueDate = s
	}
	if p, ok := raw["from"].(map[string]any); ok {
		out.From = mergeParty(p)
	}
	if p, ok := raw["to"].(map[string]any); ok {
		out.To = mergeParty(p)
	}
	if items, ok := mergeItems(raw["items"]); ok {
		out.Items = items
	}
	if s, ok := stringField(raw, "discountType"); ok {
		out.DiscountType = sanitizeDiscountType(s)
	}
	if v, present := raw["discountValue"]; present {
		out.DiscountValue = money.ClampNonNegative(money.ToDecimal(v, decimal.Zero))
	}
	if v, present := raw["taxRate"]; present {
		out.TaxRate = money.ClampNonNegative(money.ToDecimal(v, decimal.Zero))
	}
	if s, ok := stringField(raw, "notes"); ok {
		out.Notes = s
	}
	if s, ok := stringField(raw, "terms"); ok {
		out.Terms = s
	}

	return out
}

// mergeItems validates the stored items value. Returns ok=false when the
// value is not a non-empty array, which makes the caller keep the defaults.
func mergeItems(v any) ([]entity.LineItem, bool) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	items := make([]entity.LineItem, 0, len(list))
	for _, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, mergeItem(m))
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func mergeItem(m map[string]any) entity.LineItem {
	id, ok := stringField(m, "id")
	if !ok || id == "" {
		id = entity.NewID()
	}
	desc, _ := stringField(m, "description")
	return entity.LineItem{
		ID:          id,
		Description: desc,
		Quantity:    money.ClampNonNegative(money.ToDecimal(m["quantity"], decimal.Zero)),
		UnitPrice:   money.ClampNonNegative(money.ToDecimal(m["unitPrice"], decimal.Zero)),
	}
}

func mergeParty(m map[string]any) entity.PartyInfo {
	s := func(key string) string {
		v, _ := stringField(m, key)
		return v
	}
	return entity.PartyInfo{
		Name:    s("name"),
		Address: s("address"),
		Email:   s("email"),
		Phone:   s("phone"),
		Website: s("website"),
		TaxID:   s("taxId"),
	}
}

// dateField accepts only ISO (YYYY-MM-DD) strings, the same rule edits go
// through; anything else keeps the default date.
func dateField(m map[string]any, key string) (string, bool) {
	s, ok := stringField(m, key)
	if !ok {
		return "", false
	}
	if _, err := time.Parse(entity.DateLayout, s); err != nil {
		return "", false
	}
	return s, true
}

func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// sanitizeLineStyle: only the exact value "simple" switches the display mode.
func sanitizeLineStyle(s string) entity.LineStyle {
	if s == string(entity.LineStyleSimple) {
		return entity.LineStyleSimple
	}
	return entity.LineStyleDetailed
}

// sanitizeDiscountType: only the exact value "fixed" survives.
func sanitizeDiscountType(s string) entity.DiscountType {
	if s == string(entity.DiscountFixed) {
		return entity.DiscountFixed
	}
	return entity.DiscountPercent
}
