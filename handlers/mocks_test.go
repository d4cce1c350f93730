package handlers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"health-portal/models"
	"health-portal/utils"
)

// Compile-time check to ensure BackendMock implements models.Backend
var _ models.Backend = (*BackendMock)(nil)

// BackendMock is a hand-rolled mock of the REST backend contract.
type BackendMock struct {
	ListProgramsFunc          func(ctx context.Context) (*models.ProgramPage, error)
	GetProgramFunc            func(ctx context.Context, id int) (*models.Program, error)
	CreateProgramFunc         func(ctx context.Context, in models.ProgramInput) (*models.Program, error)
	UpdateProgramFunc         func(ctx context.Context, id int, in models.ProgramInput) (*models.Program, error)
	DeleteProgramFunc         func(ctx context.Context, id int) error
	ListClientsFunc           func(ctx context.Context, search string, page int) (*models.ClientPage, error)
	GetClientFunc             func(ctx context.Context, id int) (*models.Client, error)
	CreateClientFunc          func(ctx context.Context, in models.ClientInput) (*models.Client, error)
	UpdateClientFunc          func(ctx context.Context, id int, in models.ClientInput) (*models.Client, error)
	DeleteClientFunc          func(ctx context.Context, id int) error
	ListEnrollmentsFunc       func(ctx context.Context) ([]models.Enrollment, error)
	EnrollClientFunc          func(ctx context.Context, clientID int, in models.EnrollmentInput) (*models.Enrollment, error)
	ListClientEnrollmentsFunc func(ctx context.Context, clientID int) ([]models.Enrollment, error)

	DeleteClientCalls          int
	DeleteProgramCalls         int
	CreateClientCalls          int
	EnrollClientCalls          int
	ListClientEnrollmentsCalls int
}

func (m *BackendMock) ListPrograms(ctx context.Context) (*models.ProgramPage, error) {
	if m.ListProgramsFunc != nil {
		return m.ListProgramsFunc(ctx)
	}
	return &models.ProgramPage{TotalPages: 1}, nil
}

func (m *BackendMock) GetProgram(ctx context.Context, id int) (*models.Program, error) {
	if m.GetProgramFunc != nil {
		return m.GetProgramFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *BackendMock) CreateProgram(ctx context.Context, in models.ProgramInput) (*models.Program, error) {
	if m.CreateProgramFunc != nil {
		return m.CreateProgramFunc(ctx, in)
	}
	return nil, errors.New("CreateProgramFunc not implemented in mock")
}

func (m *BackendMock) UpdateProgram(ctx context.Context, id int, in models.ProgramInput) (*models.Program, error) {
	if m.UpdateProgramFunc != nil {
		return m.UpdateProgramFunc(ctx, id, in)
	}
	return nil, errors.New("UpdateProgramFunc not implemented in mock")
}

func (m *BackendMock) DeleteProgram(ctx context.Context, id int) error {
	m.DeleteProgramCalls++
	if m.DeleteProgramFunc != nil {
		return m.DeleteProgramFunc(ctx, id)
	}
	return nil
}

func (m *BackendMock) ListClients(ctx context.Context, search string, page int) (*models.ClientPage, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx, search, page)
	}
	return &models.ClientPage{TotalPages: 1}, nil
}

func (m *BackendMock) GetClient(ctx context.Context, id int) (*models.Client, error) {
	if m.GetClientFunc != nil {
		return m.GetClientFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *BackendMock) CreateClient(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	m.CreateClientCalls++
	if m.CreateClientFunc != nil {
		return m.CreateClientFunc(ctx, in)
	}
	return nil, errors.New("CreateClientFunc not implemented in mock")
}

func (m *BackendMock) UpdateClient(ctx context.Context, id int, in models.ClientInput) (*models.Client, error) {
	if m.UpdateClientFunc != nil {
		return m.UpdateClientFunc(ctx, id, in)
	}
	return nil, errors.New("UpdateClientFunc not implemented in mock")
}

func (m *BackendMock) DeleteClient(ctx context.Context, id int) error {
	m.DeleteClientCalls++
	if m.DeleteClientFunc != nil {
		return m.DeleteClientFunc(ctx, id)
	}
	return nil
}

func (m *BackendMock) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	if m.ListEnrollmentsFunc != nil {
		return m.ListEnrollmentsFunc(ctx)
	}
	return nil, nil
}

func (m *BackendMock) EnrollClient(ctx context.Context, clientID int, in models.EnrollmentInput) (*models.Enrollment, error) {
	m.EnrollClientCalls++
	if m.EnrollClientFunc != nil {
		return m.EnrollClientFunc(ctx, clientID, in)
	}
	return nil, errors.New("EnrollClientFunc not implemented in mock")
}

func (m *BackendMock) ListClientEnrollments(ctx context.Context, clientID int) ([]models.Enrollment, error) {
	m.ListClientEnrollmentsCalls++
	if m.ListClientEnrollmentsFunc != nil {
		return m.ListClientEnrollmentsFunc(ctx, clientID)
	}
	return nil, nil
}

// Compile-time check to ensure FlashMock implements utils.FlashStore
var _ utils.FlashStore = (*FlashMock)(nil)

// FlashMock keeps flash messages in memory with one-shot Take semantics.
type FlashMock struct {
	mu       sync.Mutex
	messages map[string]string
	counter  int
}

func (f *FlashMock) Put(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.messages == nil {
		f.messages = make(map[string]string)
	}
	f.counter++
	token := fmt.Sprintf("token-%d", f.counter)
	f.messages[token] = message
	return token, nil
}

func (f *FlashMock) Take(ctx context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	message, ok := f.messages[token]
	if !ok {
		return "", nil
	}
	delete(f.messages, token)
	return message, nil
}

func (f *FlashMock) Close() error { return nil }

// Stored reports whether any pending flash message equals msg.
func (f *FlashMock) Stored(msg string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m == msg {
			return true
		}
	}
	return false
}

// Compile-time check to ensure KafkaMock implements utils.KafkaProducer
var _ utils.KafkaProducer = (*KafkaMock)(nil)

type KafkaMock struct {
	mu       sync.Mutex
	Messages [][]byte
}

func (k *KafkaMock) SendMessage(ctx context.Context, topic string, key, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.Messages = append(k.Messages, value)
	return nil
}

func (k *KafkaMock) Close() error { return nil }
