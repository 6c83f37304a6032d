// Package leads validates website form submissions and relays them to the
// hosted form backend. One endpoint takes every form; a hidden formType field
// tells the submissions apart. There is no retry and no offline queue: a
// failed relay surfaces as a generic try-again error and the caller simply
// resubmits.
package leads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/grayvally/invoicer-api/internal/domain"
	"github.com/grayvally/invoicer-api/pkg/logger"
)

// Known form types and their required fields.
var requiredFields = map[string][]string{
	"contact":    {"name", "email", "message"},
	"audit":      {"name", "email", "website"},
	"newsletter": {"email"},
	"proposal":   {"name", "email", "plan"},
}

// ValidationError carries per-field messages so the UI can surface them
// inline next to the offending inputs.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

// Service relays validated submissions.
type Service struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
}

// NewService builds the relay for the configured third-party endpoint.
func NewService(endpoint string, log *logger.Logger) *Service {
	return &Service{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 20 * time.Second},
		log:      log,
	}
}

// Submit validates the fields for the given form type and forwards them as a
// multipart POST. Returns:
//   - domain.ErrNotFound for an unknown form type
//   - *ValidationError when required fields are missing or malformed
//   - domain.ErrUpstream (wrapped) on non-2xx responses or transport errors
func (s *Service) Submit(ctx context.Context, formType string, fields map[string]string) error {
	required, ok := requiredFields[formType]
	if !ok {
		return domain.ErrNotFound
	}

	if verr := validate(required, fields); verr != nil {
		return verr
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("leads: build form body: %w", err)
		}
	}
	// Hidden discriminator the backend uses to route the submission.
	if err := w.WriteField("formType", formType); err != nil {
		return fmt.Errorf("leads: build form body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("leads: build form body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return fmt.Errorf("leads: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("formType", formType).Msg("leads: relay failed")
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Warn().Int("status", resp.StatusCode).Str("formType", formType).Msg("leads: relay rejected")
		return fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	s.log.Info().Str("formType", formType).Msg("leads: submission relayed")
	return nil
}

func validate(required []string, fields map[string]string) *ValidationError {
	problems := make(map[string]string)
	for _, f := range required {
		v := strings.TrimSpace(fields[f])
		if v == "" {
			problems[f] = "required"
			continue
		}
		if f == "email" && !looksLikeEmail(v) {
			problems[f] = "invalid email address"
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}

// looksLikeEmail is the same shallow shape check the website forms apply;
// deliverability is the form backend's problem.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".") && !strings.ContainsAny(s, " \t")
}
