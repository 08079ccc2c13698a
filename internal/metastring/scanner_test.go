package metastring

import "testing"

func TestScanSegments(t *testing.T) {
	cases := []struct {
		input string
		want  segments
	}{
		{"2019-04-25-11-30_run-2.tif", segments{date: "2019-04-25", time: "11-30", pairs: "run-2"}},
		{"2019-04-25_11-30_run-2", segments{date: "2019-04-25", time: "11-30", pairs: "run-2"}},
		{"2019-04-25", segments{date: "2019-04-25"}},
		{"2019-04-25__a-b", segments{date: "2019-04-25", pairs: "a-b"}},
		{"11-30-15.250-UTC_a-b", segments{time: "11-30-15"}},
		{"11-30-15-250-UTC_a-b", segments{time: "11-30-15-250-UTC", pairs: "a-b"}},
		{"1-30_a-b", segments{pairs: "1-30_a-b"}},
		{"201a-04-25_a-b", segments{pairs: "201a-04-25_a-b"}},
		{"a-b.c-d.tif", segments{pairs: "a-b"}},
		{"", segments{}},
	}
	for _, tc := range cases {
		if got := scan(tc.input); got != tc.want {
			t.Fatalf("scan(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"11-30":        "11:30",
		"11-30-15":     "11-30-15",
		"23-20-24-EST": "23-20-24-EST",
		"11-30Z":       "11-30Z",
	}
	for raw, want := range cases {
		if got := normalizeTime(raw); got != want {
			t.Fatalf("normalizeTime(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestMatchTimeStopsAtTerminators(t *testing.T) {
	if n := matchTime("12-34_x"); n != 5 {
		t.Fatalf("matchTime underscore = %d, want 5", n)
	}
	if n := matchTime("12-34.x"); n != 5 {
		t.Fatalf("matchTime period = %d, want 5", n)
	}
	if n := matchTime("12-3"); n != 0 {
		t.Fatalf("matchTime short = %d, want 0", n)
	}
}
