package content

import (
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

const (
	categoriesFile = "categories.yaml"
	topicsGlob     = "topics/*.yaml"
)

// Loader reads a dataset from a directory tree:
//
//	categories.yaml
//	topics/<slug>.yaml
type Loader struct {
	fsys     fs.FS
	source   string
	renderer *Renderer
}

// NewLoader creates a loader over fsys. source is only used for reporting.
func NewLoader(fsys fs.FS, source string, renderer *Renderer) *Loader {
	if renderer == nil {
		renderer = NewRenderer("")
	}
	return &Loader{
		fsys:     fsys,
		source:   source,
		renderer: renderer,
	}
}

// Source returns the loader's source description.
func (l *Loader) Source() string { return l.source }

// Load reads, parses and renders the dataset. It does not validate it.
func (l *Loader) Load() (*Dataset, error) {
	var cats CategoriesFile
	if err := l.readYAML(categoriesFile, &cats); err != nil {
		return nil, err
	}

	paths, err := fs.Glob(l.fsys, topicsGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list topic files: %w", err)
	}

	bySlug := make(map[string]*domain.Topic, len(paths))
	fileOrder := make([]*domain.Topic, 0, len(paths))
	for _, p := range paths {
		topic, err := l.loadTopic(p)
		if err != nil {
			return nil, err
		}
		if _, dup := bySlug[topic.Slug]; !dup {
			bySlug[topic.Slug] = topic
		}
		fileOrder = append(fileOrder, topic)
	}

	ds := &Dataset{
		Topics:     make([]*domain.Topic, 0, len(fileOrder)),
		Categories: make([]domain.SidebarCategory, 0, len(cats.Categories)),
		Source:     l.source,
	}

	placed := make(map[*domain.Topic]bool, len(fileOrder))
	for _, entry := range cats.Categories {
		cat := domain.SidebarCategory{
			Name:   entry.Name,
			Icon:   entry.Icon,
			Topics: make([]domain.TopicRef, 0, len(entry.Topics)),
		}
		for _, slug := range entry.Topics {
			ref := domain.TopicRef{Slug: slug, Title: slug}
			if t, ok := bySlug[slug]; ok {
				ref.Title = t.Title
				if !placed[t] {
					ds.Topics = append(ds.Topics, t)
					placed[t] = true
				}
			}
			cat.Topics = append(cat.Topics, ref)
		}
		ds.Categories = append(ds.Categories, cat)
	}

	// Unlisted or duplicate topics are kept so that Validate can report them.
	for _, t := range fileOrder {
		if !placed[t] {
			ds.Topics = append(ds.Topics, t)
		}
	}

	return ds, nil
}

func (l *Loader) loadTopic(p string) (*domain.Topic, error) {
	var tf TopicFile
	if err := l.readYAML(p, &tf); err != nil {
		return nil, err
	}

	topic := &domain.Topic{
		ID:          tf.ID,
		Slug:        tf.Slug,
		Title:       tf.Title,
		Description: tf.Description,
		Category:    tf.Category,
		Sections:    make([]domain.Section, 0, len(tf.Sections)),
	}
	if topic.Slug == "" {
		topic.Slug = slugFromPath(p)
	}
	if topic.ID == "" {
		topic.ID = topic.Slug
	}

	for _, s := range tf.Sections {
		body := s.Content
		switch {
		case s.Markdown != "" && s.Content != "":
			return nil, fmt.Errorf("%s: section %q sets both content and markdown", p, s.ID)
		case s.Markdown != "":
			html, err := l.renderer.Render(s.Markdown)
			if err != nil {
				return nil, fmt.Errorf("%s: section %q: %w", p, s.ID, err)
			}
			body = html
		}
		topic.Sections = append(topic.Sections, domain.Section{
			ID:      s.ID,
			Title:   s.Title,
			Content: body,
		})
	}

	return topic, nil
}

func (l *Loader) readYAML(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func slugFromPath(p string) string {
	base := path.Base(p)
	return base[:len(base)-len(path.Ext(base))]
}
