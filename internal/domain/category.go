package domain

import "strings"

// TopicRef is the sidebar back-reference to a Topic, by slug.
type TopicRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// SidebarCategory groups topics in the navigation sidebar.
//
// Only Expanded changes at runtime. Name, Icon and Topics come from the
// dataset and are shared with every copy of the category.
type SidebarCategory struct {
	Name   string     `json:"name"`
	Icon   string     `json:"icon"`
	Topics []TopicRef `json:"topics"`

	// Expanded controls whether the topic list is visible.
	Expanded bool `json:"expanded"`
}

// Contains reports whether the category lists the slug.
func (c *SidebarCategory) Contains(slug string) bool {
	if c == nil || slug == "" {
		return false
	}
	for _, ref := range c.Topics {
		if ref.Slug == slug {
			return true
		}
	}
	return false
}

// RoutePrefix is CategoryRoutePrefix applied to the category name.
func (c *SidebarCategory) RoutePrefix() string {
	return CategoryRoutePrefix(c.Name)
}

// CategoryRoutePrefix derives the routing path segment for a category name.
// Examples:
//   - "Object-Oriented Programming" -> "object-oriented-programming"
//   - "Frameworks & Tools"          -> "frameworks-and-tools"
func CategoryRoutePrefix(name string) string {
	prefix := strings.ToLower(name)
	prefix = strings.ReplaceAll(prefix, " & ", "-and-")
	return strings.ReplaceAll(prefix, " ", "-")
}
