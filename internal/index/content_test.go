package index

import (
	"sync"
	"testing"

	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

func TestContentIndex_Dataset(t *testing.T) {
	idx := NewContentIndex()

	if idx.Ready() {
		t.Fatal("new index should not be ready")
	}
	if n := idx.TopicCount(); n != 0 {
		t.Errorf("expected 0 topics, got %d", n)
	}
	if got := idx.NewRepository().Categories(); len(got) != 0 {
		t.Errorf("expected empty repository, got %d categories", len(got))
	}

	ds := &content.Dataset{
		Topics:     []*domain.Topic{{ID: "1", Slug: "streams", Title: "Streams"}},
		Categories: []domain.SidebarCategory{{Name: "Core APIs", Topics: []domain.TopicRef{{Slug: "streams"}}}},
	}
	idx.UpdateDataset(ds)

	if !idx.Ready() {
		t.Fatal("index should be ready after UpdateDataset")
	}
	if idx.Dataset() != ds {
		t.Error("Dataset did not return the stored dataset")
	}
	if n := idx.TopicCount(); n != 1 {
		t.Errorf("expected 1 topic, got %d", n)
	}
	if idx.GetLastReload().IsZero() {
		t.Error("last reload was not recorded")
	}
	if _, ok := idx.NewRepository().TopicBySlug("streams"); !ok {
		t.Error("repository does not see the stored dataset")
	}
}

func TestContentIndex_Views(t *testing.T) {
	idx := NewContentIndex()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx.IncrementViews("streams")
		}()
	}
	wg.Wait()

	if n := idx.Views("streams"); n != 50 {
		t.Errorf("expected 50 views, got %d", n)
	}
	if n := idx.Views("unknown"); n != 0 {
		t.Errorf("expected 0 views, got %d", n)
	}

	idx.MergeViews(map[string]int64{"streams": 10, "methods": 7})

	if n := idx.Views("streams"); n != 50 {
		t.Errorf("merge lowered a counter: got %d", n)
	}
	if n := idx.Views("methods"); n != 7 {
		t.Errorf("expected 7 views, got %d", n)
	}

	stats := idx.ViewStats()
	stats["streams"] = 0
	if idx.Views("streams") != 50 {
		t.Error("ViewStats returned a shared map")
	}
}
