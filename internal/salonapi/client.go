package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maisonbelle/storefront/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// Client wraps REST calls to the salon booking/payment backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
}

// NewClient constructs a salon backend client.
func NewClient(baseURL, apiKey string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

// WithTimeout overrides the HTTP client timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpClient.Timeout = d
	}
	return c
}

// Services lists the bookable service catalog.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var wrapped struct {
		Services []Service `json:"services"`
		Data     []Service `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/services", nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}
	if len(wrapped.Services) > 0 {
		return wrapped.Services, nil
	}
	return wrapped.Data, nil
}

// Beauticians lists active staff, optionally filtered to one service.
func (c *Client) Beauticians(ctx context.Context, serviceID string) ([]Beautician, error) {
	path := "/beauticians"
	if serviceID != "" {
		path += "?serviceId=" + url.QueryEscape(serviceID)
	}
	var wrapped struct {
		Beauticians []Beautician `json:"beauticians"`
		Data        []Beautician `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get beauticians: %w", err)
	}
	if len(wrapped.Beauticians) > 0 {
		return wrapped.Beauticians, nil
	}
	return wrapped.Data, nil
}

// Products lists the retail product catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var wrapped struct {
		Products []Product `json:"products"`
		Data     []Product `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	if len(wrapped.Products) > 0 {
		return wrapped.Products, nil
	}
	return wrapped.Data, nil
}

// Slots returns the ordered bookable start times for one day.
func (c *Client) Slots(ctx context.Context, q SlotQuery) ([]Slot, error) {
	params := url.Values{}
	params.Set("serviceId", q.ServiceID)
	params.Set("variantName", q.VariantName)
	params.Set("date", q.Date)
	if q.Any {
		params.Set("any", "true")
	} else if q.BeauticianID != "" {
		params.Set("beauticianId", q.BeauticianID)
	}

	var wrapped struct {
		Slots []Slot `json:"slots"`
		Data  []Slot `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/availability/slots?"+params.Encode(), nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}
	if len(wrapped.Slots) > 0 {
		return wrapped.Slots, nil
	}
	return wrapped.Data, nil
}

// CreateAppointment creates an unpaid reservation (pay-in-salon mode).
func (c *Client) CreateAppointment(ctx context.Context, req AppointmentRequest) (*AppointmentResponse, error) {
	var resp AppointmentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", req, &resp); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return &resp, nil
}

// CreateCheckoutSession creates a payment session and returns the provider
// redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSessionResponse, error) {
	var resp CheckoutSessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/checkout/session", req, &resp); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &resp, nil
}

// Appointment fetches current status and detail for one appointment.
func (c *Client) Appointment(ctx context.Context, id string) (*Appointment, error) {
	var appt Appointment
	path := "/appointments/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &appt); err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &appt, nil
}

// ConfirmCheckout pings the explicit confirmation endpoint after a payment
// redirect. Best-effort: the payment webhook does the same job server-side.
func (c *Client) ConfirmCheckout(ctx context.Context, sessionID string) error {
	path := "/checkout/confirm?session_id=" + url.QueryEscape(sessionID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil); err != nil {
		return fmt.Errorf("confirm checkout: %w", err)
	}
	return nil
}

// CancelUnpaidAppointment deletes an unpaid reservation after the user
// abandons payment.
func (c *Client) CancelUnpaidAppointment(ctx context.Context, id string) error {
	path := "/checkout/cancel-appointment/" + url.PathEscape(id)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	return nil
}

// MyAppointments lists the authenticated user's bookings for the profile tab.
func (c *Client) MyAppointments(ctx context.Context, token string) ([]Appointment, error) {
	var wrapped struct {
		Appointments []Appointment `json:"appointments"`
		Data         []Appointment `json:"data"`
	}
	if err := c.doAuthJSON(ctx, http.MethodGet, "/me/appointments", token, nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get my appointments: %w", err)
	}
	if len(wrapped.Appointments) > 0 {
		return wrapped.Appointments, nil
	}
	return wrapped.Data, nil
}

// MyOrders lists the authenticated user's retail orders.
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	var wrapped struct {
		Orders []Order `json:"orders"`
		Data   []Order `json:"data"`
	}
	if err := c.doAuthJSON(ctx, http.MethodGet, "/me/orders", token, nil, &wrapped); err != nil {
		return nil, fmt.Errorf("get my orders: %w", err)
	}
	if len(wrapped.Orders) > 0 {
		return wrapped.Orders, nil
	}
	return wrapped.Data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doAuthJSON(ctx, method, path, "", body, out)
}

func (c *Client) doAuthJSON(ctx context.Context, method, path, bearer string, body, out interface{}) error {
	endpoint := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" && apiErr.Code == "" {
			msg := string(respBody)
			if len(msg) > 300 {
				msg = msg[:300]
			}
			apiErr.Message = msg
		}
		c.logger.Warn("salon API non-2xx response",
			"status", resp.StatusCode, "path", path, "code", apiErr.Code)
		return apiErr
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
