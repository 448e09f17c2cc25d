package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"college-portal.backend/pkg/crypto"
)

func TestResolvePassword(t *testing.T) {
	if _, err := resolvePassword(nil); err == nil {
		t.Fatal("expected usage error without args")
	}
	got, err := resolvePassword([]string{"abc"})
	if err != nil || got != "abc" {
		t.Fatalf("unexpected arg password: %q %v", got, err)
	}
}

func TestResolveCost(t *testing.T) {
	orig := getenvFn
	defer func() { getenvFn = orig }()

	getenvFn = func(string) string { return "" }
	if got := resolveCost(); got != defaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	getenvFn = func(string) string { return "5" }
	if got := resolveCost(); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	getenvFn = func(string) string { return "high" }
	if got := resolveCost(); got != defaultCost {
		t.Fatalf("expected default cost for garbage, got %d", got)
	}
}

func TestGenerateHash(t *testing.T) {
	hash, err := generateHash("my-pass", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err := crypto.NewHasher(4).Verify("my-pass", hash)
	if err != nil || !ok {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestMain_PrintsHash(t *testing.T) {
	origArgs, origStdout, origGetenv := os.Args, os.Stdout, getenvFn
	defer func() {
		os.Args, os.Stdout, getenvFn = origArgs, origStdout, origGetenv
	}()

	os.Args = []string{"hash-gen", "my-pass"}
	getenvFn = func(string) string { return "4" }
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	main()

	_ = w.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(r)
	text := out.String()
	if !strings.Contains(text, "Generating hash with cost 4") {
		t.Fatalf("unexpected output: %s", text)
	}
	if !strings.Contains(text, "Bcrypt Hash: $2") {
		t.Fatalf("hash output missing: %s", text)
	}
	if strings.Contains(text, "my-pass") {
		t.Fatalf("password leaked to output: %s", text)
	}
}

func TestMain_Failures(t *testing.T) {
	origArgs, origFatal, origGen := os.Args, fatalfFn, generateHashFn
	defer func() {
		os.Args, fatalfFn, generateHashFn = origArgs, origFatal, origGen
	}()

	var fatal string
	fatalfFn = func(format string, args ...interface{}) { fatal = fmt.Sprintf(format, args...) }

	os.Args = []string{"hash-gen"}
	main()
	if !strings.Contains(fatal, "usage") {
		t.Fatalf("expected usage failure, got %q", fatal)
	}

	fatal = ""
	os.Args = []string{"hash-gen", "pw"}
	generateHashFn = func(string, int) (string, error) { return "", errors.New("bcrypt failed") }
	main()
	if !strings.Contains(fatal, "Failed to hash password") {
		t.Fatalf("expected hash failure, got %q", fatal)
	}
}
