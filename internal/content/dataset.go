package content

import (
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

// Dataset is one immutable, fully loaded set of topics and categories.
//
// A Dataset is never mutated once returned by the Loader. Per-visitor state
// (category expansion) lives in a Repository built on top of it.
type Dataset struct {
	// Topics in display order (category order, then listing order)
	Topics []*domain.Topic

	// Categories are templates: Expanded is always false here.
	Categories []domain.SidebarCategory

	// Source describes where the dataset was loaded from (ex: "embedded").
	Source string
}

// TopicCount returns the number of topics.
func (d *Dataset) TopicCount() int {
	if d == nil {
		return 0
	}
	return len(d.Topics)
}

// FirstTopic returns the first topic of the first category.
func (d *Dataset) FirstTopic() (domain.TopicRef, bool) {
	if d == nil {
		return domain.TopicRef{}, false
	}
	for _, cat := range d.Categories {
		if len(cat.Topics) > 0 {
			return cat.Topics[0], true
		}
	}
	return domain.TopicRef{}, false
}

// Validate checks the authoring contract between topics and categories:
//   - topic ids and slugs are unique and non-empty, titles are non-empty
//   - section ids are unique and non-empty within a topic
//   - category names are unique and non-empty
//   - every slug listed by a category resolves to exactly one topic whose
//     Category equals the category route prefix
//   - every topic is listed by exactly one category
//
// All violations are returned joined in a single error.
func (d *Dataset) Validate() error {
	if d == nil {
		return errors.New("dataset is nil")
	}

	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	ids := make(map[string]bool, len(d.Topics))
	slugs := make(map[string]*domain.Topic, len(d.Topics))
	for _, t := range d.Topics {
		switch {
		case t.Slug == "":
			add("topic %q has an empty slug", t.ID)
		case slugs[t.Slug] != nil:
			add("duplicate topic slug %q", t.Slug)
		default:
			slugs[t.Slug] = t
		}
		if t.ID == "" {
			add("topic %q has an empty id", t.Slug)
		} else if ids[t.ID] {
			add("duplicate topic id %q", t.ID)
		}
		ids[t.ID] = true
		if t.Title == "" {
			add("topic %q has an empty title", t.Slug)
		}

		sections := make(map[string]bool, len(t.Sections))
		for _, s := range t.Sections {
			if s.ID == "" {
				add("topic %q has a section with an empty id", t.Slug)
				continue
			}
			if sections[s.ID] {
				add("topic %q has duplicate section id %q", t.Slug, s.ID)
			}
			sections[s.ID] = true
		}
	}

	names := make(map[string]bool, len(d.Categories))
	listed := make(map[string]string, len(d.Topics))
	for _, cat := range d.Categories {
		if cat.Name == "" {
			add("category with an empty name")
		} else if names[cat.Name] {
			add("duplicate category name %q", cat.Name)
		}
		names[cat.Name] = true

		prefix := domain.CategoryRoutePrefix(cat.Name)
		for _, ref := range cat.Topics {
			if other, ok := listed[ref.Slug]; ok {
				add("topic %q is listed by both %q and %q", ref.Slug, other, cat.Name)
				continue
			}
			listed[ref.Slug] = cat.Name

			t, ok := slugs[ref.Slug]
			if !ok {
				add("category %q lists unknown topic %q", cat.Name, ref.Slug)
				continue
			}
			if t.Category != prefix {
				add("topic %q has category %q but is listed by %q (%q)", t.Slug, t.Category, cat.Name, prefix)
			}
		}
	}

	for _, t := range d.Topics {
		if t.Slug == "" {
			continue
		}
		if _, ok := listed[t.Slug]; !ok {
			add("topic %q is not listed by any category", t.Slug)
		}
	}

	return errors.Join(errs...)
}
