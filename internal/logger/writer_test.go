package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestAsyncSinkFansOutToConsoleAndFile(t *testing.T) {
	console := &bytes.Buffer{}
	file := &bytes.Buffer{}
	sink := newAsyncSink(console, file, 1024)

	for _, line := range []string{"first\n", "second\n"} {
		if err := sink.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := "first\nsecond\n"
	if console.String() != want {
		t.Fatalf("console = %q, want %q", console.String(), want)
	}
	if file.String() != want {
		t.Fatalf("file = %q, want %q", file.String(), want)
	}
}

func TestAsyncSinkConsoleOnly(t *testing.T) {
	console := &bytes.Buffer{}
	sink := newAsyncSink(console, nil, 1024)

	if err := sink.Write([]byte("solo\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(console.String(), "solo") {
		t.Fatalf("console = %q", console.String())
	}
}
