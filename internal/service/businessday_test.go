package service

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBusinessDays(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			// Monday through next Monday: weekend dropped, end excluded
			name:  "week with weekend",
			start: "2024-01-01",
			end:   "2024-01-08",
			want:  []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"},
		},
		{
			name:  "weekend only",
			start: "2024-01-06",
			end:   "2024-01-08",
			want:  nil,
		},
		{
			name:  "single business day",
			start: "2024-01-02",
			end:   "2024-01-03",
			want:  []string{"2024-01-02"},
		},
		{
			name:  "empty when start equals end",
			start: "2024-01-02",
			end:   "2024-01-02",
			want:  nil,
		},
		{
			name:  "empty when start after end",
			start: "2024-01-05",
			end:   "2024-01-02",
			want:  nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BusinessDays(day(tc.start), day(tc.end))
			if len(got) != len(tc.want) {
				t.Fatalf("got %d days, want %d: %v", len(got), len(tc.want), got)
			}
			for i, w := range tc.want {
				if got[i].Format(dateLayout) != w {
					t.Fatalf("day[%d]=%s, want %s", i, got[i].Format(dateLayout), w)
				}
			}
		})
	}
}

func TestBusinessDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 1, 0, 0, time.UTC)
	got := BusinessDays(start, end)
	if len(got) != 2 {
		t.Fatalf("got %d days, want 2: %v", len(got), got)
	}
}
