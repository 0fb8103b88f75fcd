package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Mask(t *testing.T) {
	f := NewFilter(DefaultBannedWords, " heck , ลบ")

	tests := []struct {
		in, want string
	}{
		{"what the shit", "what the ****"},
		{"SHIT happens", "**** happens"},
		{"shitake mushrooms", "shitake mushrooms"},
		{"oh heck no", "oh **** no"},
		{"คำว่าลบนี้", "คำว่า**นี้"},
		{"", ""},
		{"all good here", "all good here"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Mask(tt.in), tt.in)
	}
}

func TestFilter_LongestWordWins(t *testing.T) {
	f := NewFilter([]string{"ass", "asshole"}, "")

	assert.Equal(t, "you *******", f.Mask("you asshole"))
}

func TestFilter_NilIsNoop(t *testing.T) {
	var f *Filter
	assert.Equal(t, "shit", f.Mask("shit"))
}
