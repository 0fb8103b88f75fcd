// Package seed holds the fixed demo feed used by POST /api/posts/seed.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"campus-feed/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed posts.yaml
var postsYAML []byte

type fixture struct {
	Type          string `yaml:"type"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Location      string `yaml:"location"`
	EventInDays   int    `yaml:"eventInDays"`
	LostFoundType string `yaml:"lostFoundType"`
	Item          string `yaml:"item"`
	Department    string `yaml:"department"`
	AuthorSID     string `yaml:"authorSid"`
	ImageURL      string `yaml:"imageUrl"`
	RSVP          struct {
		Going      int64 `yaml:"going"`
		Interested int64 `yaml:"interested"`
		NotGoing   int64 `yaml:"notGoing"`
	} `yaml:"rsvp"`
}

// Posts returns the demo posts with event dates counted from now. Creation
// times step back one second per entry so the feed keeps fixture order.
func Posts(now time.Time) ([]models.Post, error) {
	var fixtures []fixture
	if err := yaml.Unmarshal(postsYAML, &fixtures); err != nil {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}

	now = now.UTC()
	out := make([]models.Post, 0, len(fixtures))
	for i, f := range fixtures {
		t := models.PostType(f.Type)
		if !t.Valid() {
			return nil, fmt.Errorf("seed entry %d: unknown type %q", i, f.Type)
		}
		created := now.Add(-time.Duration(i) * time.Second)
		p := models.Post{
			Type:          t,
			Title:         f.Title,
			Description:   f.Description,
			AuthorSID:     f.AuthorSID,
			Location:      f.Location,
			LostFoundType: models.LostFoundType(f.LostFoundType),
			Item:          f.Item,
			Department:    f.Department,
			ImageURL:      f.ImageURL,
			RSVP: models.RSVP{
				Going:      f.RSVP.Going,
				Interested: f.RSVP.Interested,
				NotGoing:   f.RSVP.NotGoing,
			},
			Reactions: models.Reactions{},
			CreatedAt: created,
			UpdatedAt: created,
		}
		if f.EventInDays > 0 {
			d := now.Add(time.Duration(f.EventInDays) * 24 * time.Hour)
			p.EventDate = &d
		}
		out = append(out, p)
	}
	return out, nil
}
