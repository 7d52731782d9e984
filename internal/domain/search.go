package domain

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier words are better)
	ScorePositionBonus = 10.0

	// Whole-slug match bonus
	ScoreExactSlugBonus = 200.0

	// Section title matches count for less than topic title matches
	SectionWeight = 0.5

	// Usage weight (view counter contributes to final score)
	ScoreUsageWeight = 0.1
)

// Query represents parsed search input.
type Query struct {
	Raw       string   // normalized input
	Fragments []string // whitespace separated words
}

// ParseQuery parses user input into a structured query.
// Examples:
//   - "Getting Started" -> ["getting", "started"]
//   - "  oop  "         -> ["oop"]
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Query{Raw: input}
	}
	return &Query{
		Raw:       input,
		Fragments: strings.Fields(input),
	}
}

// Candidate is a topic with its match score.
type Candidate struct {
	Topic        *Topic
	LexicalScore float64 // score from fuzzy matching
	UsageScore   float64 // score from view counters
	TotalScore   float64
}

// TopicFragments splits the slug and title of a topic into match words.
// Example: slug "classes-and-objects", title "Classes & Objects" ->
// ["classes", "and", "objects", "classes", "objects"]
func TopicFragments(t *Topic) []string {
	frags := splitWords(t.Slug)
	return append(frags, splitWords(t.Title)...)
}

// ScoreTopic calculates the lexical score of a topic for a query.
func ScoreTopic(query *Query, topic *Topic) float64 {
	if query == nil || topic == nil || len(query.Fragments) == 0 {
		return 0.0
	}

	if query.Raw == topic.Slug || query.Raw == strings.ToLower(topic.Title) {
		return ScoreExactMatch + ScoreExactSlugBonus
	}

	topicFrags := TopicFragments(topic)
	var sectionFrags []string
	for _, s := range topic.Sections {
		sectionFrags = append(sectionFrags, splitWords(s.Title)...)
	}

	var total float64
	for _, qFrag := range query.Fragments {
		best := bestFragmentScore(qFrag, topicFrags)
		if s := bestFragmentScore(qFrag, sectionFrags) * SectionWeight; s > best {
			best = s
		}
		total += best
	}
	return total
}

func bestFragmentScore(qFrag string, frags []string) float64 {
	best := 0.0
	for i, f := range frags {
		if s := scoreFragment(qFrag, f, i); s > best {
			best = s
		}
	}
	return best
}

// scoreFragment scores a single query fragment against a topic word
func scoreFragment(queryFrag, word string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	word = normalizeFragment(word)

	if queryFrag == "" || word == "" {
		return 0.0
	}

	if queryFrag == word {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	if strings.HasPrefix(word, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	if index := strings.Index(word, queryFrag); index >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(word)))
		return ScoreSubstringMatch + substringBonus
	}

	similarity := calculateSimilarity(queryFrag, word)
	if similarity > 0.5 && len(queryFrag) >= 3 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity is the ratio of query characters found in the word.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(len([]rune(s1)))
}

// RankTopics ranks topics by lexical score plus a logarithmic usage bonus.
// views may be nil.
func RankTopics(query *Query, topics []*Topic, views func(slug string) int64) []*Candidate {
	candidates := make([]*Candidate, 0, len(topics))

	for _, topic := range topics {
		lexicalScore := ScoreTopic(query, topic)
		if lexicalScore == 0.0 {
			continue
		}

		usageScore := 0.0
		if views != nil {
			if n := views(topic.Slug); n > 0 {
				usageScore = math.Log10(float64(n)+1) * ScoreUsageWeight * 100
			}
		}

		candidates = append(candidates, &Candidate{
			Topic:        topic,
			LexicalScore: lexicalScore,
			UsageScore:   usageScore,
			TotalScore:   lexicalScore + usageScore,
		})
	}

	// Stable so that equal scores keep dataset order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].TotalScore > candidates[j].TotalScore
	})

	return candidates
}

// splitWords lowercases s and splits it on anything that is not a letter or digit.
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
