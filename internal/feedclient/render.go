package feedclient

import (
	"fmt"
	"sort"
	"strings"

	"campus-feed/internal/models"
	"campus-feed/internal/thread"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

type Styles struct {
	Heading lipgloss.Style
	Title   lipgloss.Style
	Meta    lipgloss.Style
	Counter lipgloss.Style
	Meme    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1),
		Title:   lipgloss.NewStyle().Bold(true),
		Meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Counter: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Meme:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("13")),
	}
}

var groupLabels = map[models.PostType]string{
	models.PostTypeEvent:        "Events",
	models.PostTypeLostFound:    "Lost & Found",
	models.PostTypeAnnouncement: "Announcements",
}

// RenderFeed groups posts by type, in the fixed type order, each group
// headed by its label and size. Posts keep their order within a group.
func RenderFeed(s Styles, posts []models.Post) string {
	groups := lo.GroupBy(posts, func(p models.Post) models.PostType { return p.Type })

	var b strings.Builder
	for _, t := range models.PostTypes {
		items := groups[t]
		if len(items) == 0 {
			continue
		}
		b.WriteString(s.Heading.Render(fmt.Sprintf("%s (%d)", groupLabels[t], len(items))))
		b.WriteString("\n")
		for _, p := range items {
			b.WriteString(renderPost(s, p))
			b.WriteString("\n")
		}
	}
	if b.Len() == 0 {
		return s.Meta.Render("No posts yet.") + "\n"
	}
	return b.String()
}

func renderPost(s Styles, p models.Post) string {
	lines := []string{s.Title.Render(p.Title) + "  " + s.Meta.Render(p.ID.Hex())}
	if p.Description != "" {
		lines = append(lines, p.Description)
	}

	var meta []string
	switch p.Type {
	case models.PostTypeEvent:
		if p.EventDate != nil {
			meta = append(meta, p.EventDate.Format("Mon 02 Jan 2006"))
		}
		if p.Location != "" {
			meta = append(meta, p.Location)
		}
		lines = append(lines, s.Counter.Render(fmt.Sprintf("going %d · interested %d · not going %d",
			p.RSVP.Going, p.RSVP.Interested, p.RSVP.NotGoing)))
	case models.PostTypeLostFound:
		meta = append(meta, strings.ToUpper(string(p.LostFoundType)), p.Item, p.LFLocation)
	case models.PostTypeAnnouncement:
		meta = append(meta, p.Department)
		if p.AttachmentURL != "" {
			meta = append(meta, string(p.AttachmentType)+": "+p.AttachmentURL)
		}
	}
	meta = lo.Filter(meta, func(m string, _ int) bool { return m != "" })
	if len(meta) > 0 {
		lines = append(lines, s.Meta.Render(strings.Join(meta, " · ")))
	}
	if r := RenderReactions(p.Reactions); r != "" {
		lines = append(lines, s.Counter.Render(r))
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(strings.Join(lines, "\n"))
}

// RenderReactions prints counts as "👍 3  🎉 1", highest first, ties by key.
func RenderReactions(r models.Reactions) string {
	keys := lo.Keys(r)
	sort.Slice(keys, func(i, j int) bool {
		if r[keys[i]] != r[keys[j]] {
			return r[keys[i]] > r[keys[j]]
		}
		return keys[i] < keys[j]
	})
	parts := lo.Map(keys, func(k string, _ int) string { return fmt.Sprintf("%s %d", k, r[k]) })
	return strings.Join(parts, "  ")
}

// RenderThread prints the reply forest, two spaces of indent per depth.
func RenderThread(s Styles, roots []*thread.Node) string {
	if len(roots) == 0 {
		return s.Meta.Render("No comments yet.") + "\n"
	}
	var b strings.Builder
	thread.Walk(roots, func(n *thread.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		text := n.Content
		if n.MemeURL != nil && *n.MemeURL != "" {
			text = s.Meme.Render("[meme] " + shorten(*n.MemeURL, 60))
		}
		line := fmt.Sprintf("%s└ %s %s", indent, text, s.Meta.Render(n.ID.Hex()))
		if r := RenderReactions(n.Reactions); r != "" {
			line += "  " + s.Counter.Render(r)
		}
		b.WriteString(line)
		b.WriteString("\n")
	})
	return b.String()
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
