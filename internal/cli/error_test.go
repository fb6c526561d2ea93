package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{NewUsageError("bad flag"), ExitUsage},
		{NewNotFoundError("no image"), ExitNotFound},
		{NewCorruptError("bad head"), ExitCorrupt},
		{NewNetworkError("upload failed"), ExitNetwork},
		{errors.New("plain"), ExitInternal},
		{fmt.Errorf("wrapped: %w", NewCorruptError("bad count")), ExitCorrupt},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestFormatErrorText(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, NewUsageError("bad flag"), false)
	if got := buf.String(); got != "error: bad flag\n" {
		t.Fatalf("text output = %q", got)
	}
}

func TestFormatErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, NewCorruptError("bad head"), true)

	var e Error
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if e.Code != ExitCorrupt || e.Type != "corrupt_image" || e.Message != "bad head" {
		t.Fatalf("decoded = %+v", e)
	}
}

func TestFormatErrorJSONPlainError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, errors.New("boom"), true)
	if !strings.Contains(buf.String(), `"internal"`) {
		t.Fatalf("plain error not categorized as internal: %s", buf.String())
	}
}

func TestFormatErrorNil(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, nil, false)
	FormatError(&buf, nil, true)
	if buf.Len() != 0 {
		t.Fatalf("nil error produced output: %q", buf.String())
	}
}
