package domain

// Topic is one documentation article, addressed by its slug.
//
// Topics are built once when a dataset is loaded and never mutated afterwards.
// Every request shares the same *Topic values.
type Topic struct {
	// ID is the opaque unique identifier from the dataset.
	ID string `json:"id"`

	// Slug is the URL-safe routing key.
	// Example: getting-started
	Slug string `json:"slug"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Category is the key of the owning category, equal to
	// CategoryRoutePrefix of the category name.
	// Example: object-oriented-programming
	Category string `json:"category"`

	// Sections are kept in display order.
	Sections []Section `json:"sections"`
}

// Section is an addressable subdivision of a Topic.
type Section struct {
	// ID is unique within the topic and doubles as the in-page anchor.
	ID    string `json:"id"`
	Title string `json:"title"`

	// Content is a pre-rendered HTML fragment. It is never parsed here.
	Content string `json:"content"`
}

// Section returns the section with the given anchor id.
func (t *Topic) Section(id string) (*Section, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Sections {
		if t.Sections[i].ID == id {
			return &t.Sections[i], true
		}
	}
	return nil, false
}

// Ref returns the lightweight sidebar reference for the topic.
func (t *Topic) Ref() TopicRef {
	return TopicRef{Slug: t.Slug, Title: t.Title}
}
