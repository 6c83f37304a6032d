package draft_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvally/invoicer-api/internal/application/draft"
	"github.com/grayvally/invoicer-api/internal/application/dto"
	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/internal/domain/entity"
	"github.com/grayvally/invoicer-api/internal/infrastructure/kv"
	"github.com/grayvally/invoicer-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

func testSeed() entity.DraftSeed {
	return entity.DraftSeed{
		Issuer:   entity.PartyInfo{Name: "GrayVally", Email: "hello@grayvally.com"},
		Currency: entity.CurrencyUSD,
		Notes:    "Thank you for your business.",
		Terms:    "Payment is due within 7 days of the invoice date.",
	}
}

func newService(t *testing.T, store *kv.MemoryStore) *draft.Service {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return draft.NewService(context.Background(), store, testSeed(), log)
}

func TestService_StartsFromDefaultsOnEmptyStore(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())
	d := svc.Current()

	assert.Equal(t, entity.CurrencyUSD, d.Currency)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "GrayVally", d.From.Name)
}

func TestService_Update(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	d := svc.Update(dto.UpdateDraftRequest{
		Currency:      strPtr("EUR"),
		InvoiceNumber: strPtr("INV-2026-0100"),
		IssueDate:     strPtr("2026-09-01"),
		DueDate:       strPtr("2026-08-01"), // earlier than issue; still accepted
		DiscountType:  strPtr("fixed"),
		DiscountValue: 50,
		TaxRate:       "7.5",
		To:            &dto.PartyUpdate{Name: strPtr("Acme Corp")},
		Notes:         strPtr(""),
	})

	assert.Equal(t, entity.CurrencyEUR, d.Currency)
	assert.Equal(t, "INV-2026-0100", d.InvoiceNumber)
	assert.Equal(t, "2026-09-01", d.IssueDate)
	assert.Equal(t, "2026-08-01", d.DueDate)
	assert.Equal(t, entity.DiscountFixed, d.DiscountType)
	assert.True(t, d.DiscountValue.Equal(dec("50")))
	assert.True(t, d.TaxRate.Equal(dec("7.5")))
	assert.Equal(t, "Acme Corp", d.To.Name)
	assert.Empty(t, d.Notes, "explicit empty string clears the field")
}

func TestService_UpdateRejectsGarbage(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())
	before := svc.Current()

	d := svc.Update(dto.UpdateDraftRequest{
		Currency:      strPtr("DOGE"),
		IssueDate:     strPtr("01/09/2026"), // not ISO; ignored
		DiscountType:  strPtr("bogus"),
		DiscountValue: "not a number",
		TaxRate:       -12,
	})

	assert.Equal(t, before.Currency, d.Currency)
	assert.Equal(t, before.IssueDate, d.IssueDate)
	assert.Equal(t, entity.DiscountPercent, d.DiscountType)
	assert.True(t, d.DiscountValue.IsZero(), "non-numeric collapses to zero")
	assert.True(t, d.TaxRate.IsZero(), "negative clamps to zero")
}

func TestService_ItemLifecycle(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	d := svc.AddItem(dto.LineItemRequest{
		Description: strPtr("Design sprint"),
		Quantity:    2,
		UnitPrice:   500,
	})
	require.Len(t, d.Items, 2)
	added := d.Items[1]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Design sprint", added.Description)

	d, err := svc.UpdateItem(added.ID, dto.LineItemRequest{Quantity: 3})
	require.NoError(t, err)
	assert.True(t, d.Items[1].Quantity.Equal(dec("3")))
	assert.Equal(t, "Design sprint", d.Items[1].Description, "untouched fields survive")

	_, err = svc.UpdateItem("no-such-id", dto.LineItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	d = svc.RemoveItem(added.ID)
	require.Len(t, d.Items, 1)
}

func TestService_RemoveLastItemIsNoOp(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())
	d := svc.Current()
	require.Len(t, d.Items, 1)

	after := svc.RemoveItem(d.Items[0].ID)
	require.Len(t, after.Items, 1)
	assert.Equal(t, d.Items[0].ID, after.Items[0].ID)

	// Unknown ids are equally harmless.
	after = svc.RemoveItem("no-such-id")
	require.Len(t, after.Items, 1)
}

func TestService_Totals(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())
	first := svc.Current()
	_, err := svc.UpdateItem(first.Items[0].ID, dto.LineItemRequest{Quantity: 2, UnitPrice: 500})
	require.NoError(t, err)
	svc.Update(dto.UpdateDraftRequest{DiscountValue: 10, TaxRate: 5})

	_, totals := svc.Totals()
	assert.Equal(t, "945", totals.Total.String())
}

func TestService_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	svc := newService(t, store)
	svc.Update(dto.UpdateDraftRequest{
		Currency:      strPtr("GBP"),
		InvoiceNumber: strPtr("INV-2026-7777"),
	})
	svc.AddItem(dto.LineItemRequest{Description: strPtr("Audit"), Quantity: 1, UnitPrice: "1200"})
	saved := svc.Current()
	svc.Save(ctx)

	// A fresh service over the same store resumes from the snapshot.
	reloaded := newService(t, store).Current()
	assert.Equal(t, saved.Currency, reloaded.Currency)
	assert.Equal(t, saved.InvoiceNumber, reloaded.InvoiceNumber)
	require.Len(t, reloaded.Items, len(saved.Items))
	for i := range saved.Items {
		assert.Equal(t, saved.Items[i].ID, reloaded.Items[i].ID)
		assert.Equal(t, saved.Items[i].Description, reloaded.Items[i].Description)
	}
}

func TestService_LoadSurvivesCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, draft.StorageKey, "{not json at all"))

	d := newService(t, store).Current()
	require.NotEmpty(t, d.Items)
	assert.Equal(t, entity.CurrencyUSD, d.Currency)
}

func TestService_ResetClearsStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	svc := newService(t, store)
	svc.Update(dto.UpdateDraftRequest{InvoiceNumber: strPtr("INV-2026-9999")})
	svc.Save(ctx)

	fresh := svc.Reset(ctx)
	assert.NotEqual(t, "INV-2026-9999", fresh.InvoiceNumber)
	require.Len(t, fresh.Items, 1)

	_, err := store.Get(ctx, draft.StorageKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CurrentReturnsCopy(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())
	d := svc.Current()
	d.Items[0].Description = "mutated"
	assert.NotEqual(t, "mutated", svc.Current().Items[0].Description)
}
