package seed

import (
	"testing"
	"time"

	"campus-feed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosts(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	posts, err := Posts(now)
	require.NoError(t, err)
	require.Len(t, posts, 15)

	counts := map[models.PostType]int{}
	for _, p := range posts {
		counts[p.Type]++
		assert.NotEmpty(t, p.Title)
		assert.NotNil(t, p.Reactions)
	}
	assert.Equal(t, map[models.PostType]int{
		models.PostTypeEvent:        5,
		models.PostTypeLostFound:    5,
		models.PostTypeAnnouncement: 5,
	}, counts)

	first := posts[0]
	assert.Equal(t, "Python Workshop Tomorrow", first.Title)
	require.NotNil(t, first.EventDate)
	assert.Equal(t, now.Add(24*time.Hour), *first.EventDate)
	assert.EqualValues(t, 15, first.RSVP.Going)
	assert.EqualValues(t, 2, first.RSVP.NotGoing)

	assert.Equal(t, models.Lost, posts[1].LostFoundType)
	assert.Nil(t, posts[1].EventDate)
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
	assert.Equal(t, "Movie Night: The Matrix", posts[12].Title)
}
