package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseCommandText(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	out := executeCommand(t, cmd, "--format", "text", "2019-05-25-23-20-24-EST_reactor-2.tif", "21-20.tif")

	assertContains(t, out, "2019-05-25-23-20-24-EST_reactor-2.tif\n  date: 2019-05-25\n  time: 23-20-24-EST\n  reactor: 2\n")
	assertContains(t, out, "21-20.tif\n  time: 21:20\n")
}

func TestParseCommandReportsInvalidNames(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	out, err := executeCommandErr(cmd, "--format", "text", "2019-04-26_run-2-3_reactor-7.tif", "run-1.tif")
	if err == nil {
		t.Fatalf("expected error for invalid name")
	}
	assertContains(t, err.Error(), "1 of 2 names invalid")
	assertContains(t, out, `2019-04-26_run-2-3_reactor-7.tif INVALID: pair 1 "run-2-3": multiple key-value separators`)
	assertContains(t, out, "run-1.tif\n  run: 1\n")
}

func TestParseCommandWarnings(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	out := executeCommand(t, cmd, "--format", "text", "2019-04-26_run-2_date-7.tif")
	assertContains(t, out, "  date: 7\n")
	assertContains(t, out, `warning: date overwritten with "7"`)
}

func TestParseCommandJSON(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	out, _ := executeCommandErr(cmd, "--format", "json", "2019-04-26_run-_reactor-7.tif", "bad.tif")

	var got []recordDTO
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if !got[0].Valid || got[0].Metadata["run"] != "" || got[0].Metadata["reactor"] != "7" {
		t.Fatalf("first record = %+v", got[0])
	}
	if _, ok := got[0].Metadata["run"]; !ok {
		t.Fatalf("blank value dropped: %+v", got[0])
	}
	if got[1].Valid || !strings.Contains(got[1].Error, "missing key-value separator") {
		t.Fatalf("second record = %+v", got[1])
	}
}

func TestParseCommandYAML(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	out := executeCommand(t, cmd, "--format", "yaml", "2019-04-26_-2_reactor-7.tif")

	var got []recordDTO
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].Metadata[""] != "2" || got[0].Metadata["date"] != "2019-04-26" {
		t.Fatalf("records = %+v", got)
	}
}

func TestParseCommandTable(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	out, _ := executeCommandErr(cmd, "--format", "table", "2019-04-25-11-30_run-2_sec-1.tif", "sec-2.tif", "oops.tif")

	for _, want := range []string{"2019-04-25-11-30_run-2_sec-1.tif", "11:30", "sec-2.tif", "oops.tif", "invalid", "ok"} {
		assertContains(t, out, want)
	}
}

func TestParseCommandRejectsUnknownFormat(t *testing.T) {
	cmd := newParseCommand(context.Background(), newApp())
	if _, err := executeCommandErr(cmd, "--format", "xml", "run-1.tif"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestResolveFormat(t *testing.T) {
	var buf strings.Builder
	cases := []struct {
		flag, configured, want string
	}{
		{"", "auto", formatText},
		{"", "yaml", formatYAML},
		{"JSON", "yaml", formatJSON},
		{"auto", "table", formatText},
	}
	for _, tc := range cases {
		got, err := resolveFormat(tc.flag, tc.configured, &buf)
		if err != nil {
			t.Fatalf("resolveFormat(%q, %q) error = %v", tc.flag, tc.configured, err)
		}
		if got != tc.want {
			t.Fatalf("resolveFormat(%q, %q) = %q, want %q", tc.flag, tc.configured, got, tc.want)
		}
	}
}
