package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommon(t *testing.T) {
	existing := slog.String(FieldOp, "list")
	cases := []struct {
		name     string
		service  string
		version  string
		wantKeys []string
	}{
		{"both", "vmhl-console", "dev", []string{FieldOp, FieldService, FieldVersion}},
		{"service only", "vmhl-store", "", []string{FieldOp, FieldService}},
		{"neither", "", "", []string{FieldOp}},
	}
	for _, tc := range cases {
		attrs := WithCommon([]slog.Attr{existing}, tc.service, tc.version)
		if len(attrs) != len(tc.wantKeys) {
			t.Fatalf("%s: expected %d attrs, got %+v", tc.name, len(tc.wantKeys), attrs)
		}
		for i, key := range tc.wantKeys {
			if attrs[i].Key != key {
				t.Fatalf("%s: expected key %s at %d, got %s", tc.name, key, i, attrs[i].Key)
			}
		}
	}
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	Debug(nil, "d")
	Info(nil, "i")
	Warn(nil, "w")
	Error(nil, "e", errors.New("boom"))
}

func TestErrorAttachesErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Error(logger, "delete team failed", errors.New("connection reset"), slog.Int(FieldTeamID, 7))
	Debug(logger, "loading standings")

	out := buf.String()
	for _, want := range []string{`error="connection reset"`, "team_id=7", "loading standings"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}

	buf.Reset()
	Error(logger, "update team failed", nil)
	if strings.Contains(buf.String(), FieldError+"=") {
		t.Fatalf("expected no error field for nil error, got %s", buf.String())
	}
}
