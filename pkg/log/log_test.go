package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_InfoMsg(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := &Logger{out: &buf, verbose: false}

	l.InfoMsg("connected to %s\n", "localhost:23")

	got := buf.String()
	if !strings.Contains(got, "[+] ") {
		t.Errorf("InfoMsg() output %q missing info prefix", got)
	}
	if !strings.Contains(got, "connected to localhost:23") {
		t.Errorf("InfoMsg() output %q missing message", got)
	}
}

func TestLogger_ErrorMsg(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := &Logger{out: &buf, verbose: false}

	l.ErrorMsg("dial failed: %s\n", "refused")

	got := buf.String()
	if !strings.Contains(got, "[!] Error: ") {
		t.Errorf("ErrorMsg() output %q missing error prefix", got)
	}
}

func TestLogger_VerboseMsg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		want    bool
	}{
		{"enabled", true, true},
		{"disabled", false, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := &Logger{out: &buf, verbose: tc.verbose}

			l.VerboseMsg("backend selected\n")

			if got := buf.Len() > 0; got != tc.want {
				t.Errorf("VerboseMsg() wrote output = %v, want %v", got, tc.want)
			}
		})
	}
}
