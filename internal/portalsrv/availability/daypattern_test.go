package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		target  time.Weekday
		want    bool
	}{
		{"full name", "Monday", time.Monday, true},
		{"full name miss", "Monday", time.Tuesday, false},
		{"three letter", "Tue", time.Tuesday, true},
		{"compact run", "MWF", time.Wednesday, true},
		{"compact run miss", "MWF", time.Tuesday, false},
		{"registrar tuesday", "T", time.Tuesday, true},
		{"registrar thursday", "R", time.Thursday, true},
		{"registrar thursday not tuesday", "R", time.Tuesday, false},
		{"tr pair", "TR", time.Thursday, true},
		{"slash separated", "Tu/Th", time.Thursday, true},
		{"comma separated", "Mon, Wed, Fri", time.Friday, true},
		{"mixed case", "mOnDaY", time.Monday, true},
		{"sunday single", "U", time.Sunday, true},
		{"saturday single", "S", time.Saturday, true},
		{"thurs variant", "Thurs", time.Thursday, true},
		{"unknown token ignored", "Xyz Monday", time.Monday, true},
		{"unknown token no match", "Xyz", time.Monday, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayMatches(tt.pattern, tt.target, MissingMatchesNone))
		})
	}
}

func TestDayMatchesMissingPattern(t *testing.T) {
	t.Run("matches all policy", func(t *testing.T) {
		assert.True(t, DayMatches("", time.Monday, MissingMatchesAll))
		assert.True(t, DayMatches("  ", time.Sunday, MissingMatchesAll))
	})
	t.Run("matches none policy", func(t *testing.T) {
		assert.False(t, DayMatches("", time.Monday, MissingMatchesNone))
		assert.False(t, DayMatches("  ", time.Sunday, MissingMatchesNone))
	})
}
