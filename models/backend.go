package models

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"health-portal/monitoring"
)

var ErrNotFound = errors.New("record not found")

// APIError — ошибка бэкенда с его собственным сообщением, когда оно есть.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Backend — весь REST-контракт бэкенда, по методу на (ресурс, глагол).
// Без ретраев, кэша и дедупликации: каждая страница ходит в сеть сама.
type Backend interface {
	ListPrograms(ctx context.Context) (*ProgramPage, error)
	GetProgram(ctx context.Context, id int) (*Program, error)
	CreateProgram(ctx context.Context, in ProgramInput) (*Program, error)
	UpdateProgram(ctx context.Context, id int, in ProgramInput) (*Program, error)
	DeleteProgram(ctx context.Context, id int) error

	ListClients(ctx context.Context, search string, page int) (*ClientPage, error)
	GetClient(ctx context.Context, id int) (*Client, error)
	CreateClient(ctx context.Context, in ClientInput) (*Client, error)
	UpdateClient(ctx context.Context, id int, in ClientInput) (*Client, error)
	DeleteClient(ctx context.Context, id int) error

	ListEnrollments(ctx context.Context) ([]Enrollment, error)
	EnrollClient(ctx context.Context, clientID int, in EnrollmentInput) (*Enrollment, error)
	ListClientEnrollments(ctx context.Context, clientID int) ([]Enrollment, error)
}

type restBackend struct {
	baseURL string
	http    *http.Client
}

// NewRESTBackend читает BACKEND_URL (по умолчанию локальный Django на :8000).
func NewRESTBackend() Backend {
	base := os.Getenv("BACKEND_URL")
	if base == "" {
		base = "http://localhost:8000"
	}
	return NewRESTBackendURL(base)
}

func NewRESTBackendURL(base string) Backend {
	return &restBackend{
		baseURL: base + "/api",
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (b *restBackend) do(ctx context.Context, method, path, resource string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", resource, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		monitoring.BackendRequests.WithLabelValues(resource, "error").Inc()
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		monitoring.BackendRequests.WithLabelValues(resource, "not_found").Inc()
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		monitoring.BackendRequests.WithLabelValues(resource, "error").Inc()
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	monitoring.BackendRequests.WithLabelValues(resource, "ok").Inc()

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}
	switch dst := out.(type) {
	case *json.RawMessage:
		*dst = data
		return nil
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", resource, err)
		}
		return nil
	}
}

// Django кладёт сообщение в {"error": ...} либо {"detail": ...}.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Detail
}

func (b *restBackend) ListPrograms(ctx context.Context) (*ProgramPage, error) {
	var raw json.RawMessage
	if err := b.do(ctx, http.MethodGet, "/programs/", "programs", nil, &raw); err != nil {
		return nil, err
	}
	page := &ProgramPage{}
	pages, err := decodeCollection(raw, &page.Programs)
	if err != nil {
		return nil, err
	}
	page.TotalPages = pages
	return page, nil
}

func (b *restBackend) GetProgram(ctx context.Context, id int) (*Program, error) {
	var program Program
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/programs/%d/", id), "programs", nil, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (b *restBackend) CreateProgram(ctx context.Context, in ProgramInput) (*Program, error) {
	var program Program
	if err := b.do(ctx, http.MethodPost, "/programs/", "programs", in, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (b *restBackend) UpdateProgram(ctx context.Context, id int, in ProgramInput) (*Program, error) {
	var program Program
	if err := b.do(ctx, http.MethodPut, fmt.Sprintf("/programs/%d/", id), "programs", in, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

func (b *restBackend) DeleteProgram(ctx context.Context, id int) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/programs/%d/", id), "programs", nil, nil)
}

func (b *restBackend) ListClients(ctx context.Context, search string, page int) (*ClientPage, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	path := "/clients/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var raw json.RawMessage
	if err := b.do(ctx, http.MethodGet, path, "clients", nil, &raw); err != nil {
		return nil, err
	}
	result := &ClientPage{}
	pages, err := decodeCollection(raw, &result.Clients)
	if err != nil {
		return nil, err
	}
	result.TotalPages = pages
	return result, nil
}

func (b *restBackend) GetClient(ctx context.Context, id int) (*Client, error) {
	var client Client
	if err := b.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d/", id), "clients", nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (b *restBackend) CreateClient(ctx context.Context, in ClientInput) (*Client, error) {
	var client Client
	if err := b.do(ctx, http.MethodPost, "/clients/", "clients", in, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (b *restBackend) UpdateClient(ctx context.Context, id int, in ClientInput) (*Client, error) {
	var client Client
	if err := b.do(ctx, http.MethodPut, fmt.Sprintf("/clients/%d/", id), "clients", in, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (b *restBackend) DeleteClient(ctx context.Context, id int) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/clients/%d/", id), "clients", nil, nil)
}

func (b *restBackend) ListEnrollments(ctx context.Context) ([]Enrollment, error) {
	var enrollments []Enrollment
	if err := b.do(ctx, http.MethodGet, "/enrollments/", "enrollments", nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (b *restBackend) EnrollClient(ctx context.Context, clientID int, in EnrollmentInput) (*Enrollment, error) {
	var enrollment Enrollment
	path := fmt.Sprintf("/clients/%d/enroll/", clientID)
	if err := b.do(ctx, http.MethodPost, path, "enrollments", in, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (b *restBackend) ListClientEnrollments(ctx context.Context, clientID int) ([]Enrollment, error) {
	var enrollments []Enrollment
	path := fmt.Sprintf("/clients/%d/enrollments/", clientID)
	if err := b.do(ctx, http.MethodGet, path, "enrollments", nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
