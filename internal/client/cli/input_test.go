package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Enter title", &out)
	if err != nil {
		t.Fatalf("GetSimpleText error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
	if !strings.Contains(out.String(), "Enter title") {
		t.Errorf("prompt not written: %q", out.String())
	}
}

func TestGetSimpleTextEOFWithPartialLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("partial"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Prompt", &out)
	if err != nil {
		t.Fatalf("GetSimpleText error: %v", err)
	}
	if got != "partial" {
		t.Errorf("got %q, want %q", got, "partial")
	}
}

func TestGetMultiline(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("line one\nline two\n\nignored\n"))
	var out bytes.Buffer

	got, err := GetMultiline(reader, "Enter content", &out)
	if err != nil {
		t.Fatalf("GetMultiline error: %v", err)
	}
	if got != "line one\nline two" {
		t.Errorf("got %q", got)
	}
}

func TestGetPasswordUsesSeam(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	got, err := GetPassword(&out)
	if err != nil {
		t.Fatalf("GetPassword error: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("got %q, want s3cret", got)
	}
	if !strings.Contains(out.String(), "Enter password") {
		t.Errorf("prompt not written: %q", out.String())
	}
}
