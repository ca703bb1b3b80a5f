package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"24h basic", "09:30", 570, true},
		{"24h with seconds", "14:05:59", 845, true},
		{"midnight", "00:00", 0, true},
		{"end of day", "23:59", 1439, true},
		{"iso fragment", "2026-02-10T09:30", 570, true},
		{"iso with seconds and zone", "2026-02-10T09:30:00Z", 570, true},
		{"iso with offset", "2026-02-10T13:15:00+05:00", 795, true},
		{"12h am", "9:30 am", 570, true},
		{"12h pm", "2:15 PM", 855, true},
		{"12h noon", "12:00 pm", 720, true},
		{"12h midnight", "12:00 am", 0, true},
		{"dotted meridiem", "9:30 a.m.", 570, true},
		{"no space before meridiem", "9:30am", 570, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"garbage", "soon", 0, false},
		{"hour out of range", "25:00", 0, false},
		{"minute out of range", "10:75", 0, false},
		{"12h hour zero", "0:30 pm", 0, false},
		{"missing minutes", "10", 0, false},
		{"too many parts", "10:00:00:00", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "12:00 AM"},
		{570, "9:30 AM"},
		{720, "12:00 PM"},
		{855, "2:15 PM"},
		{1439, "11:59 PM"},
		{-5, "12:00 AM"},
		{5000, "11:59 PM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.minute))
	}
}
