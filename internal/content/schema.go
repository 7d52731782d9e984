package content

// CategoryEntry is one category in categories.yaml.
//
//	- name: Fundamentals
//	  icon: "📘"
//	  topics: [getting-started, variables-and-types]
type CategoryEntry struct {
	Name   string   `yaml:"name"`
	Icon   string   `yaml:"icon"`
	Topics []string `yaml:"topics"`
}

// CategoriesFile is the root structure of categories.yaml.
type CategoriesFile struct {
	Categories []CategoryEntry `yaml:"categories"`
}

// SectionEntry is one section of a topic file. Exactly one of Content
// (raw HTML) or Markdown is expected.
type SectionEntry struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Markdown string `yaml:"markdown"`
}

// TopicFile is the structure of topics/<slug>.yaml.
type TopicFile struct {
	ID          string         `yaml:"id"`
	Slug        string         `yaml:"slug"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Category    string         `yaml:"category"`
	Sections    []SectionEntry `yaml:"sections"`
}
