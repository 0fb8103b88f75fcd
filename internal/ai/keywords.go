package ai

import (
	"fmt"
	"strings"
)

// Category is the coarse post kind the prompt analyzer works with. It is
// wider than models.PostType: "general" means no clear winner.
type Category string

const (
	CategoryEvent        Category = "event"
	CategoryLostFound    Category = "lost_found"
	CategoryAnnouncement Category = "announcement"
	CategoryGeneral      Category = "general"
)

// PostType maps a category onto the stored post type, or "" for general.
func (c Category) PostType() string {
	switch c {
	case CategoryEvent:
		return "event"
	case CategoryLostFound:
		return "lostfound"
	case CategoryAnnouncement:
		return "announcement"
	}
	return ""
}

// Matching is plain substring search on the lowercased prompt, so short
// entries such as "at" or "id" also hit inside longer words.
var (
	eventKeywords = []string{
		"workshop", "event", "fest", "festival", "meeting", "seminar", "conference", "party",
		"celebration", "competition", "hackathon", "tomorrow", "today", "pm", "am", "o'clock",
		"at", "in", "room", "lab", "auditorium", "hall",
	}
	lostFoundKeywords = []string{
		"lost", "found", "missing", "wallet", "phone", "laptop", "keys", "bag", "book", "card",
		"id", "yesterday", "morning", "evening", "night", "near", "around", "between", "library",
		"cafeteria", "classroom",
	}
	announcementKeywords = []string{
		"announcement", "notice", "important", "urgent", "official", "department", "university",
		"college", "academic", "exam", "holiday", "schedule", "timetable", "deadline",
		"registration", "enrollment",
	}
)

func countMatches(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}

// Vote picks the category whose keyword set has strictly more hits than
// both others. Any tie for first place, including zero hits, is general.
func Vote(prompt string) Category {
	lower := strings.ToLower(prompt)
	e := countMatches(lower, eventKeywords)
	l := countMatches(lower, lostFoundKeywords)
	a := countMatches(lower, announcementKeywords)

	switch {
	case e > l && e > a:
		return CategoryEvent
	case l > e && l > a:
		return CategoryLostFound
	case a > e && a > l:
		return CategoryAnnouncement
	}
	return CategoryGeneral
}

// fallbackAnalysis stands in for the model when analysis cannot be had
// upstream. Its prompt templates are the rich poster set.
func fallbackAnalysis(prompt string) Analysis {
	category := Vote(prompt)

	enhanced := fmt.Sprintf(`Create a stunning, professional design with the following content: "%s". Features: Elegant typography with modern aesthetics, sophisticated color palette with gradients, artistic layout with visual hierarchy, high-quality graphics with professional composition, cinematic lighting effects, suitable for digital and print use. Style: Contemporary, professional, visually striking, artistic excellence.`, prompt)
	description := fmt.Sprintf("A campus post about: %s", prompt)

	switch category {
	case CategoryEvent:
		enhanced = fmt.Sprintf(`Create a stunning, professional event poster with dramatic lighting and modern design. Features: Elegant typography with bold, eye-catching headlines, vibrant color palette with gradients (blues, purples, oranges), dynamic layout with visual hierarchy, event details prominently displayed with modern icons, sophisticated graphic elements, professional photography-style composition, cinematic lighting effects, high-quality design suitable for social media and printing. Style: Contemporary, professional, visually striking, suitable for university campus events with artistic flair. Content: "%s"`, prompt)
		description = fmt.Sprintf("Join us for an exciting event! %s. Don't miss out on this amazing opportunity to connect with fellow students and learn something new.", prompt)
	case CategoryLostFound:
		enhanced = fmt.Sprintf(`Create a beautiful, professional lost and found poster with elegant design and emotional appeal. Features: Sophisticated typography with clear hierarchy, warm and inviting color scheme (soft blues, warm grays, gentle earth tones), artistic layout with visual storytelling elements, emphasis on the lost/found item with professional photography style, contact information elegantly integrated, modern design elements with subtle shadows and depth, high contrast for readability while maintaining aesthetic appeal, emotional connection through visual design. Style: Elegant, professional, visually appealing, suitable for campus notice boards with artistic quality. Content: "%s"`, prompt)
		description = fmt.Sprintf("Help needed! %s. Please contact if you have any information or if you've seen this item. Your help is greatly appreciated!", prompt)
	case CategoryAnnouncement:
		enhanced = fmt.Sprintf(`Create a prestigious, official university announcement poster with sophisticated design and authority. Features: Professional typography with official yet modern appearance, institutional color scheme (deep blues, gold accents, crisp whites), formal layout with clear sections and visual hierarchy, official header with university branding elements, elegant design suitable for official communications, clean and authoritative appearance with artistic touches, professional composition with balanced elements. Style: Official, professional, authoritative, suitable for university announcements with visual excellence. Content: "%s"`, prompt)
		description = fmt.Sprintf("Important announcement: %s. Please take note of this information and share with your classmates.", prompt)
	}

	return Analysis{
		PostType:        category,
		Confidence:      0.6,
		EnhancedPrompt:  enhanced,
		PostDescription: description,
		Reasoning:       "Post type determined by keyword matching (fallback)",
		OriginalPrompt:  prompt,
		Source:          SourceKeywordFallback,
	}
}

// enhanceForCategory is the image path's own fallback. It shares the vote
// with fallbackAnalysis but keeps the plainer notice-board templates.
func enhanceForCategory(prompt string, category Category) string {
	base := strings.TrimSpace(prompt)

	switch category {
	case CategoryEvent:
		return fmt.Sprintf(`Create a professional, modern event poster with the following details: "%s". Design should include: Clean typography with bold headlines, modern color scheme (blues, whites, or vibrant colors), professional layout with clear hierarchy, event details prominently displayed, modern graphic elements or icons, high-quality design suitable for social media and printing. Style: Contemporary, professional, eye-catching, suitable for university campus events.`, base)
	case CategoryLostFound:
		return fmt.Sprintf(`Create a clean, professional lost and found notice with the following details: "%s". Design should include: Clear, readable typography, simple and clean layout, emphasis on the lost/found item, contact information prominently displayed, professional color scheme (blues, grays, or neutral colors), modern design elements, high contrast for readability. Style: Clean, professional, easy to read, suitable for campus notice boards.`, base)
	case CategoryAnnouncement:
		return fmt.Sprintf(`Create an official university announcement poster with the following details: "%s". Design should include: Professional typography with official appearance, university-style color scheme (blues, whites, or institutional colors), formal layout with clear sections, official header or branding elements, professional design suitable for official communications, clean and authoritative appearance. Style: Official, professional, authoritative, suitable for university announcements.`, base)
	}
	return fmt.Sprintf(`Create a professional, modern design with the following content: "%s". Design should include: Clean typography, modern color scheme, professional layout, high-quality graphics, suitable for digital and print use. Style: Contemporary, professional, clean, modern.`, base)
}
