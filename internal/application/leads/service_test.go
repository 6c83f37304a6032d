package leads_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grayvally/invoicer-api/internal/application/leads"
	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func TestSubmit_RelaysMultipartWithFormType(t *testing.T) {
	var received map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		received = map[string]string{}
		for k, vs := range r.MultipartForm.Value {
			received[k] = vs[0]
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	svc := leads.NewService(backend.URL, testLogger())
	err := svc.Submit(context.Background(), "contact", map[string]string{
		"name":    "Jordan",
		"email":   "jordan@example.com",
		"message": "Hello there",
	})
	require.NoError(t, err)

	assert.Equal(t, "contact", received["formType"], "hidden discriminator must ride along")
	assert.Equal(t, "Jordan", received["name"])
	assert.Equal(t, "jordan@example.com", received["email"])
	assert.Equal(t, "Hello there", received["message"])
}

func TestSubmit_UnknownFormType(t *testing.T) {
	svc := leads.NewService("http://unused.invalid", testLogger())
	err := svc.Submit(context.Background(), "giveaway", map[string]string{"email": "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_Validation(t *testing.T) {
	// No request must leave the process on validation failure.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for invalid submissions")
	}))
	defer backend.Close()
	svc := leads.NewService(backend.URL, testLogger())

	tests := []struct {
		name       string
		formType   string
		fields     map[string]string
		wantFields []string
	}{
		{
			name:       "contact missing everything",
			formType:   "contact",
			fields:     nil,
			wantFields: []string{"name", "email", "message"},
		},
		{
			name:       "whitespace counts as missing",
			formType:   "newsletter",
			fields:     map[string]string{"email": "   "},
			wantFields: []string{"email"},
		},
		{
			name:       "malformed email",
			formType:   "newsletter",
			fields:     map[string]string{"email": "not-an-email"},
			wantFields: []string{"email"},
		},
		{
			name:       "audit needs a website",
			formType:   "audit",
			fields:     map[string]string{"name": "A", "email": "a@b.co"},
			wantFields: []string{"website"},
		},
		{
			name:       "proposal needs a plan",
			formType:   "proposal",
			fields:     map[string]string{"name": "A", "email": "a@b.co"},
			wantFields: []string{"plan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Submit(context.Background(), tt.formType, tt.fields)
			var verr *leads.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.wantFields))
		})
	}
}

func TestSubmit_ExtraFieldsAreForwarded(t *testing.T) {
	var received url.Values
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		received = r.MultipartForm.Value
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	svc := leads.NewService(backend.URL, testLogger())
	err := svc.Submit(context.Background(), "newsletter", map[string]string{
		"email":  "a@b.co",
		"source": "footer",
	})
	require.NoError(t, err)
	assert.Equal(t, "footer", received.Get("source"))
}

func TestSubmit_UpstreamFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	svc := leads.NewService(backend.URL, testLogger())
	err := svc.Submit(context.Background(), "newsletter", map[string]string{"email": "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSubmit_TransportFailure(t *testing.T) {
	// A closed server produces a connection error rather than a status code.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	svc := leads.NewService(backend.URL, testLogger())
	err := svc.Submit(context.Background(), "newsletter", map[string]string{"email": "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
