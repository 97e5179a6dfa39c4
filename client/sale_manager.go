// Package client implements the admin-side sale lifecycle manager: the form
// state, confirmation gating and wire protocol used to drive a category's
// sale through the catalog service's update-sale endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Farhan2001M/ecp-admin/models"
	"github.com/Farhan2001M/ecp-admin/utils"
)

var (
	// ErrFormIncomplete is returned when submit is attempted without both
	// dates and a positive percentage. Incomplete forms never reach the
	// network.
	ErrFormIncomplete = errors.New("start date, end date, and percentage are required")
	// ErrConfirmationDeclined is returned when the caller's confirmation
	// gate rejects the mutation. Nothing is sent.
	ErrConfirmationDeclined = errors.New("sale mutation was not confirmed")
	// ErrRequestInFlight guards against double submission while a previous
	// request is still running.
	ErrRequestInFlight = errors.New("a sale request is already in flight")
	// ErrActionUnavailable is returned when a lifecycle action does not
	// apply to the loaded category's state.
	ErrActionUnavailable = errors.New("action is not available in the current sale state")
)

// APIError is a non-2xx response from the catalog service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog service returned %d: %s", e.StatusCode, e.Message)
}

// ConfirmFunc is the caller-supplied confirmation gate. Every sale mutation
// runs through one; returning false aborts the operation before any network
// traffic.
type ConfirmFunc func() bool

// CategorySnapshot is the slice of a category the sale form works against.
type CategorySnapshot struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	SaleStatus     models.SaleStatus `json:"saleStatus"`
	SaleStartDate  *time.Time        `json:"saleStartDate"`
	SaleEndDate    *time.Time        `json:"saleEndDate"`
	SalePercentage float64           `json:"salePercentage"`
}

// FormState holds the in-progress sale form fields.
type FormState struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Percentage float64
}

// CanSubmit reports whether the form is complete: both dates present and a
// positive percentage. This mirrors the disabled state of the submit control.
func (f FormState) CanSubmit() bool {
	return f.StartDate != nil && f.EndDate != nil && f.Percentage > 0
}

// Config configures the sale lifecycle manager.
type Config struct {
	// BaseURL is the admin API root, e.g. "http://localhost:8080/v1/admin".
	BaseURL string
	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Manager drives one category's sale lifecycle. All mutations are gated on a
// caller-side confirmation and serialized by an in-flight flag; a failed
// request leaves the form untouched so the admin can retry.
type Manager struct {
	cfg       Config
	category  CategorySnapshot
	form      FormState
	modified  bool
	inFlight  bool
	mu        sync.Mutex
	onRefresh func()
}

// NewManager loads the category's current sale configuration into the form,
// the way the edit dialog is seeded when it opens. onRefresh runs after every
// successful mutation so dependent views can refetch; it may be nil.
func NewManager(cfg Config, category CategorySnapshot, onRefresh func()) *Manager {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Manager{
		cfg:      cfg,
		category: category,
		form: FormState{
			StartDate:  category.SaleStartDate,
			EndDate:    category.SaleEndDate,
			Percentage: category.SalePercentage,
		},
		onRefresh: onRefresh,
	}
}

// SetStartDate updates the form and marks it modified.
func (m *Manager) SetStartDate(t time.Time) {
	m.form.StartDate = &t
	m.modified = true
}

// SetEndDate updates the form and marks it modified.
func (m *Manager) SetEndDate(t time.Time) {
	m.form.EndDate = &t
	m.modified = true
}

// SetPercentage updates the form and marks it modified.
func (m *Manager) SetPercentage(p float64) {
	m.form.Percentage = p
	m.modified = true
}

// Form returns a copy of the current form state.
func (m *Manager) Form() FormState { return m.form }

// Modified reports whether the form has unsaved edits.
func (m *Manager) Modified() bool { return m.modified }

// CanSubmit reports whether the submit control should be enabled.
func (m *Manager) CanSubmit() bool { return m.form.CanSubmit() }

// Loading reports whether a request is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// Submit validates the form and sends it to the service. A category that is
// Inactive gets a fresh schedule (no action field); a Pending or Active one
// gets an explicit updateSale action. Validation failures and a declined
// confirmation never produce network traffic.
func (m *Manager) Submit(ctx context.Context, confirm ConfirmFunc) error {
	if !m.form.CanSubmit() {
		return ErrFormIncomplete
	}
	if confirm != nil && !confirm() {
		return ErrConfirmationDeclined
	}

	body := map[string]interface{}{
		"saleStartDate":  m.form.StartDate.UTC().Format(time.RFC3339),
		"saleEndDate":    m.form.EndDate.UTC().Format(time.RFC3339),
		"salePercentage": m.form.Percentage,
	}
	if m.category.SaleStatus == models.SaleStatusPending || m.category.SaleStatus == models.SaleStatusActive {
		body["action"] = models.SaleActionUpdateSale
	}

	if err := m.send(ctx, body); err != nil {
		return err
	}

	m.modified = false
	m.notifyRefresh()
	return nil
}

// RequestAction sends a bare lifecycle action (startNow, cancelSale, endNow)
// for the already-stored sale configuration. No field validation applies, but
// the action must make sense for the loaded state, mirroring which buttons
// the dialog offers.
func (m *Manager) RequestAction(ctx context.Context, action string, confirm ConfirmFunc) error {
	switch action {
	case models.SaleActionStartNow, models.SaleActionCancelSale:
		if m.category.SaleStatus != models.SaleStatusPending {
			return ErrActionUnavailable
		}
	case models.SaleActionEndNow:
		if m.category.SaleStatus != models.SaleStatusActive {
			return ErrActionUnavailable
		}
	default:
		return fmt.Errorf("unknown sale action %q", action)
	}
	if confirm != nil && !confirm() {
		return ErrConfirmationDeclined
	}

	if err := m.send(ctx, map[string]interface{}{"action": action}); err != nil {
		return err
	}

	m.notifyRefresh()
	return nil
}

// Close implements the unsaved-changes guard. A modified form only closes
// once confirmDiscard approves throwing the edits away; the return value
// reports whether the dialog may actually close. Closing resets the form.
func (m *Manager) Close(confirmDiscard ConfirmFunc) bool {
	if m.modified && confirmDiscard != nil && !confirmDiscard() {
		return false
	}
	m.form = FormState{}
	m.modified = false
	return true
}

// send performs the PUT against the update-sale endpoint. Exactly one request
// may run at a time; errors are returned as-is with the form preserved, and
// no retry is attempted.
func (m *Manager) send(ctx context.Context, body map[string]interface{}) error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return ErrRequestInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return utils.WrapError(err, "failed to encode sale request")
	}

	url := fmt.Sprintf("%s/categories/%d/update-sale", m.cfg.BaseURL, m.category.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return utils.WrapError(err, "failed to build sale request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.cfg.HTTPClient.Do(req)
	if err != nil {
		return utils.WrapError(err, "failed to reach catalog service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return nil
}

func (m *Manager) notifyRefresh() {
	if m.onRefresh != nil {
		m.onRefresh()
	}
}

// readErrorMessage pulls the message out of the service's standard envelope,
// falling back to the raw body.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "unreadable response body"
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return string(raw)
}
