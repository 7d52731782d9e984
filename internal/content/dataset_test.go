package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
)

func validDataset() *Dataset {
	return &Dataset{
		Topics: []*domain.Topic{
			{ID: "1", Slug: "getting-started", Title: "Getting Started", Category: "fundamentals",
				Sections: []domain.Section{{ID: "install-jdk", Title: "Install"}}},
			{ID: "2", Slug: "classes-and-objects", Title: "Classes & Objects", Category: "object-oriented-programming"},
			{ID: "3", Slug: "build-tools", Title: "Maven & Gradle", Category: "frameworks-and-tools"},
		},
		Categories: []domain.SidebarCategory{
			{Name: "Fundamentals", Topics: []domain.TopicRef{{Slug: "getting-started", Title: "Getting Started"}}},
			{Name: "Object-Oriented Programming", Topics: []domain.TopicRef{{Slug: "classes-and-objects", Title: "Classes & Objects"}}},
			{Name: "Frameworks & Tools", Topics: []domain.TopicRef{{Slug: "build-tools", Title: "Maven & Gradle"}}},
		},
	}
}

func TestValidateAcceptsConsistentDataset(t *testing.T) {
	require.NoError(t, validDataset().Validate())
}

func TestValidateReportsViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(ds *Dataset)
		wantErr string
	}{
		{
			name:    "duplicate slug",
			mutate:  func(ds *Dataset) { ds.Topics[1].Slug = "getting-started" },
			wantErr: `duplicate topic slug "getting-started"`,
		},
		{
			name:    "duplicate id",
			mutate:  func(ds *Dataset) { ds.Topics[1].ID = "1" },
			wantErr: `duplicate topic id "1"`,
		},
		{
			name:    "empty title",
			mutate:  func(ds *Dataset) { ds.Topics[0].Title = "" },
			wantErr: `topic "getting-started" has an empty title`,
		},
		{
			name: "duplicate section id",
			mutate: func(ds *Dataset) {
				ds.Topics[0].Sections = append(ds.Topics[0].Sections, domain.Section{ID: "install-jdk"})
			},
			wantErr: `duplicate section id "install-jdk"`,
		},
		{
			name: "unknown listed slug",
			mutate: func(ds *Dataset) {
				ds.Categories[0].Topics = append(ds.Categories[0].Topics, domain.TopicRef{Slug: "ghost"})
			},
			wantErr: `lists unknown topic "ghost"`,
		},
		{
			name:    "category mismatch",
			mutate:  func(ds *Dataset) { ds.Topics[2].Category = "tools" },
			wantErr: `topic "build-tools" has category "tools"`,
		},
		{
			name:    "unlisted topic",
			mutate:  func(ds *Dataset) { ds.Categories[2].Topics = nil },
			wantErr: `topic "build-tools" is not listed by any category`,
		},
		{
			name: "listed twice",
			mutate: func(ds *Dataset) {
				ds.Categories[1].Topics = append(ds.Categories[1].Topics, domain.TopicRef{Slug: "getting-started"})
			},
			wantErr: `topic "getting-started" is listed by both "Fundamentals" and "Object-Oriented Programming"`,
		},
		{
			name:    "duplicate category",
			mutate:  func(ds *Dataset) { ds.Categories[1].Name = "Fundamentals" },
			wantErr: `duplicate category name "Fundamentals"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(ds)
			err := ds.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNilDataset(t *testing.T) {
	var ds *Dataset
	assert.Error(t, ds.Validate())
	assert.Equal(t, 0, ds.TopicCount())
}
