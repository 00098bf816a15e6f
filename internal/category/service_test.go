package category

import (
	"context"
	"errors"
	"testing"
)

type fakeSnapshot struct {
	cats []Category
}

func (f *fakeSnapshot) Categories() []Category { return f.cats }
func (f *fakeSnapshot) RefreshCategories() error {
	return nil
}

func TestListActiveReadsSnapshot(t *testing.T) {
	snap := &fakeSnapshot{cats: []Category{{ID: 1, Name: "Tailoring"}}}
	svc := NewService(nil, snap, nil)

	got := svc.ListActive()
	if len(got) != 1 || got[0].Name != "Tailoring" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewService(nil, &fakeSnapshot{}, nil)

	if _, err := svc.Create(context.Background(), CreateInput{Name: "   "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
}
