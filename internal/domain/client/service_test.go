package client

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	clients map[uuid.UUID]*Client
}

func newMockRepo() *mockRepo {
	return &mockRepo{clients: make(map[uuid.UUID]*Client)}
}

func (m *mockRepo) Create(_ context.Context, c *Client) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.clients[c.ID] = c
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return c, nil
}

func (m *mockRepo) Update(_ context.Context, c *Client) error {
	m.clients[c.ID] = c
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.clients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, search string, limit, offset int) ([]*Client, int, error) {
	var result []*Client
	for _, c := range m.clients {
		if search == "" || strings.Contains(strings.ToLower(c.FullName), strings.ToLower(search)) {
			result = append(result, c)
		}
	}
	return result, len(result), nil
}

func TestCreateClient(t *testing.T) {
	svc := NewService(newMockRepo())

	c := &Client{FullName: "Anna Petrova"}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateClientRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	for _, name := range []string{"", "   "} {
		if err := svc.Create(context.Background(), &Client{FullName: name}); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestCreateClientTrimsName(t *testing.T) {
	svc := NewService(newMockRepo())

	c := &Client{FullName: "  Anna Petrova  "}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.FullName != "Anna Petrova" {
		t.Errorf("expected trimmed name, got %q", c.FullName)
	}
}

func TestUpdateClient(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	c := &Client{FullName: "Anna Petrova"}
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("create: %v", err)
	}
	c.FullName = "Anna Smirnova"
	if err := svc.Update(context.Background(), c); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Anna Smirnova" {
		t.Errorf("expected updated name, got %q", got.FullName)
	}
}

func TestListClientsSearch(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, name := range []string{"Anna Petrova", "Boris Ivanov"} {
		if err := svc.Create(context.Background(), &Client{FullName: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), "anna", 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", total)
	}
	if items[0].FullName != "Anna Petrova" {
		t.Errorf("unexpected match %q", items[0].FullName)
	}
}
