package quiz

import "strings"

// Topic is a quiz subject offered on the topic selection screen.
type Topic struct {
	ID          string
	Name        string
	Description string
	// Accent is a hex color used for the topic's card.
	Accent string
}

var topics = []Topic{
	{ID: "general-knowledge", Name: "General Knowledge", Description: "Test your knowledge across various domains.", Accent: "#7C3AED"},
	{ID: "logic-puzzles", Name: "Logic Puzzles", Description: "Challenge your critical thinking and problem-solving.", Accent: "#2563EB"},
	{ID: "verbal-reasoning", Name: "Verbal Reasoning", Description: "Assess your ability to analyze written info.", Accent: "#059669"},
	{ID: "career-aptitude", Name: "Career Aptitude", Description: "Explore skills relevant to different careers.", Accent: "#D97706"},
}

// Topics returns the topic catalog in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicByID looks up a topic by ID or, case-insensitively, by name.
func TopicByID(id string) (Topic, bool) {
	id = strings.TrimSpace(id)
	for _, t := range topics {
		if t.ID == id || strings.EqualFold(t.Name, id) {
			return t, true
		}
	}
	return Topic{}, false
}
