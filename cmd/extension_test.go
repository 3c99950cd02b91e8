package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExtension(t *testing.T) {
	tempDir := t.TempDir()

	// An extension that records the environment it received and the
	// arguments it was called with.
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$FSIM_LEDGER_FILE\" \"$FSIM_CURRENCY\" \"$FSIM_VERBOSE\" \"$@\" > \"$FSIM_TEST_OUT\"\n"
	if err := os.WriteFile(filepath.Join(tempDir, "fsim-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	outFile := filepath.Join(tempDir, "out.txt")
	t.Setenv("FSIM_TEST_OUT", outFile)

	found, code := RunExtension("hello", []string{"world"})
	if !found {
		t.Fatal("RunExtension() did not find fsim-hello in PATH")
	}
	if code != 0 {
		t.Fatalf("RunExtension() exit code = %d, want 0", code)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("extension did not write its output: %v", err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{*ledgerFile, *defaultCurrency, "false", "world"}
	if len(got) != len(want) {
		t.Fatalf("extension output = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extension output[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunExtension_exitCode(t *testing.T) {
	tempDir := t.TempDir()
	script := "#!/bin/sh\nexit 7\n"
	if err := os.WriteFile(filepath.Join(tempDir, "fsim-failing"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("failing", nil)
	if !found {
		t.Fatal("RunExtension() did not find fsim-failing in PATH")
	}
	if code != 7 {
		t.Errorf("RunExtension() exit code = %d, want 7", code)
	}
}

func TestRunExtension_notFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	found, _ := RunExtension("no-such-extension", nil)
	if found {
		t.Error("RunExtension() claimed to find an extension in an empty PATH")
	}
}
