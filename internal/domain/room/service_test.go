package room

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	rooms map[uuid.UUID]*Room
}

func newMockRepo() *mockRepo {
	return &mockRepo{rooms: make(map[uuid.UUID]*Room)}
}

func (m *mockRepo) Create(_ context.Context, r *Room) error {
	r.ID = uuid.New()
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return r, nil
}

func (m *mockRepo) Update(_ context.Context, r *Room) error {
	m.rooms[r.ID] = r
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rooms, id)
	return nil
}

func (m *mockRepo) ListActive(_ context.Context) ([]*Room, error) {
	var result []*Room
	for _, r := range m.rooms {
		if r.Active {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Room, error) {
	var result []*Room
	for _, r := range m.rooms {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func TestCreateRoomRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Create(context.Background(), &Room{Name: "  "}); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestListActiveExcludesInactive(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	if err := svc.Create(context.Background(), &Room{Name: "Room 1", Active: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Create(context.Background(), &Room{Name: "Room 2", Active: false}); err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Room 1" {
		t.Errorf("expected only Room 1 active, got %v", active)
	}
}
