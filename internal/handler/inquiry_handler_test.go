package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/orzutravel/api/internal/domain"
	"github.com/orzutravel/api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) SendMessage(ctx context.Context, text string) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, text)
	return nil
}

func newInquiryApp(notifier *recordingNotifier) *fiber.App {
	h := NewInquiryHandler(service.NewInquiryService(notifier))

	app := fiber.New()
	app.Post("/v1/inquiries/booking", h.SubmitBooking)
	app.Post("/v1/inquiries/contact", h.SubmitContact)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubmitBookingEndpoint(t *testing.T) {
	notifier := &recordingNotifier{}
	app := newInquiryApp(notifier)

	resp := postJSON(t, app, "/v1/inquiries/booking", map[string]interface{}{
		"package_name": "Samarqand turi",
		"name":         "Aziz",
		"phone":        "+998901234567",
		"date":         "2026-09-15",
		"people":       2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "👥 Odamlar soni: 2")
}

func TestSubmitBookingMissingPhone(t *testing.T) {
	notifier := &recordingNotifier{}
	app := newInquiryApp(notifier)

	resp := postJSON(t, app, "/v1/inquiries/booking", map[string]interface{}{
		"package_name": "Samarqand turi",
		"name":         "Aziz",
		"date":         "2026-09-15",
		"people":       2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, notifier.messages, "invalid submission must not reach the channel")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validation failed", body["error"])
	assert.Contains(t, body["fields"], "phone")
}

func TestSubmitContactEndpoint(t *testing.T) {
	notifier := &recordingNotifier{}
	app := newInquiryApp(notifier)

	resp := postJSON(t, app, "/v1/inquiries/contact", map[string]interface{}{
		"name":    "Dilnoza",
		"phone":   "+998933334455",
		"message": "Narxlarni yuboring",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "📩 *Yangi xabar!*")
}

func TestSubmitContactDeliveryFailure(t *testing.T) {
	notifier := &recordingNotifier{
		err: fmt.Errorf("%w: bot was blocked", domain.ErrNotificationFailed),
	}
	app := newInquiryApp(notifier)

	resp := postJSON(t, app, "/v1/inquiries/contact", map[string]interface{}{
		"name":    "Dilnoza",
		"phone":   "+998933334455",
		"message": "Salom",
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSubmitBookingMalformedBody(t *testing.T) {
	notifier := &recordingNotifier{}
	app := newInquiryApp(notifier)

	req, _ := http.NewRequest(http.MethodPost, "/v1/inquiries/booking", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
