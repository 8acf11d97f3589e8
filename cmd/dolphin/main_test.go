package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate keeps user configuration out of the run.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOLPHIN_CONFIG", "")
	t.Setenv("NO_COLOR", "1")
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.dol")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunScript(t *testing.T) {
	isolate(t)
	path := writeScript(t, strings.Join([]string{
		"# sample",
		"var x:int = 2+3",
		"print(int:x)",
		`print(str:"hi", int:5)`,
		"dsd ignored",
		`var s:str = "a"+"b"; print(s)`,
	}, "\n"))
	code, out, errOut := runCLI(t, "", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if out != "5\nhi 5\nab\n" {
		t.Fatalf("stdout = %q", out)
	}
}

func TestRunScriptHaltsOnFirstError(t *testing.T) {
	isolate(t)
	path := writeScript(t, "print(1)\nprint(missing)\nprint(2)\n")
	code, out, errOut := runCLI(t, "", path)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "1\n" {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "Error: runtime error: undefined variable 'missing'") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestRunScriptTypeErrorRunsNothing(t *testing.T) {
	isolate(t)
	path := writeScript(t, "print(1)\nvar x:int = \"a\"+\"b\"\n")
	code, out, errOut := runCLI(t, "", path)
	if code != 1 || out != "" {
		t.Fatalf("code=%d stdout=%q", code, out)
	}
	if !strings.Contains(errOut, "type error") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestRunScriptExit(t *testing.T) {
	isolate(t)
	path := writeScript(t, "print(1)\nexit\nprint(2)\n")
	code, out, _ := runCLI(t, "", path)
	if code != 0 || out != "1\n" {
		t.Fatalf("code=%d stdout=%q", code, out)
	}
}

func TestRunMissingScript(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "", filepath.Join(t.TempDir(), "nope.dol"))
	if code != 1 || !strings.Contains(errOut, "Error:") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestTooManyArgumentsPrintsUsage(t *testing.T) {
	isolate(t)
	code, out, errOut := runCLI(t, "", "a.dol", "b.dol")
	if code == 0 {
		t.Fatalf("expected non-zero exit")
	}
	if !strings.Contains(out+errOut, "Usage:") {
		t.Fatalf("usage not printed: stdout=%q stderr=%q", out, errOut)
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	code, out, _ := runCLI(t, "", "--version")
	if code != 0 || out != "dolphin "+version+"\n" {
		t.Fatalf("code=%d stdout=%q", code, out)
	}
}

func TestStrictPrintFlag(t *testing.T) {
	isolate(t)
	path := writeScript(t, "var x = 1\nprint(x)\n")
	code, _, errOut := runCLI(t, "", "--strict-print", path)
	if code != 1 || !strings.Contains(errOut, "syntax error on line 2") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}

	path = writeScript(t, "var x = 1\nprint(int:x)\n")
	code, out, errOut := runCLI(t, "", "--strict-print", path)
	if code != 0 || out != "1\n" {
		t.Fatalf("code=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	cfg := filepath.Join(t.TempDir(), "dolphin.yml")
	if err := os.WriteFile(cfg, []byte("log_level: chatty\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	code, _, errOut := runCLI(t, "", "--config", cfg)
	if code != 1 || !strings.Contains(errOut, "settings validation failed") {
		t.Fatalf("code=%d stderr=%q", code, errOut)
	}
}

func TestConfigStrictPrint(t *testing.T) {
	isolate(t)
	cfg := filepath.Join(t.TempDir(), "dolphin.toml")
	if err := os.WriteFile(cfg, []byte("strict_print = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DOLPHIN_CONFIG", cfg)
	path := writeScript(t, "print(1)\n")
	if code, _, _ := runCLI(t, "", path); code != 1 {
		t.Fatalf("strict_print from config should reject unannotated print, got %d", code)
	}
}

func TestPipedREPL(t *testing.T) {
	isolate(t)
	input := "var x = 1\nprint(x)\nprint(nope)\npy(\n  y = x + 41\n)py\nprint(y)\nexit\nprint(9)\n"
	code, out, errOut := runCLI(t, input)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if out != "1\n42\n" {
		t.Fatalf("stdout = %q", out)
	}
	if strings.Count(errOut, "Error:") != 1 || !strings.Contains(errOut, "undefined variable 'nope'") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestShellFlagAndStatement(t *testing.T) {
	isolate(t)
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	path := writeScript(t, "sh echo \"from shell\"\nsh exit 4\nprint(1)\n")
	code, out, errOut := runCLI(t, "", "--shell", "/bin/sh", path)
	if code != 0 {
		t.Fatalf("a failing command is reported, not fatal: code=%d stderr=%q", code, errOut)
	}
	if out != "from shell\n1\n" {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "status 4") {
		t.Fatalf("stderr = %q", errOut)
	}
}
