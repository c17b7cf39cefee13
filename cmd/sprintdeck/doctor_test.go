package main

// Notes:
// - lookPath and lookChromePath are swapped for stubs, so these tests do not
//   run in parallel. Env-dependent cases use t.Setenv.

import (
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// stubLookups replaces the PATH lookups for one test.
func stubLookups(t *testing.T, engines map[string]string, chrome string) {
	t.Helper()

	origLook, origChrome := lookPath, lookChromePath
	t.Cleanup(func() {
		lookPath, lookChromePath = origLook, origChrome
	})

	lookPath = func(name string) (string, error) {
		if p, ok := engines[name]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
	lookChromePath = func() (string, bool) {
		return chrome, chrome != ""
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Status from checks
// ---------------------------------------------------------------------------

func TestRunDoctor_AllFound(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "")
	t.Setenv("ROD_NO_SANDBOX", "1")

	chrome := writeFile(t, t.TempDir(), "chrome", "")
	stubLookups(t, map[string]string{"latexmk": "/usr/bin/latexmk", "pdflatex": "/usr/bin/pdflatex"}, chrome)

	r := runDoctor()
	if r.Status != "ready" {
		t.Errorf("Status = %q, want ready (warnings %v, errors %v)", r.Status, r.Warnings, r.Errors)
	}
	if len(r.LaTeX) != len(latexEngines) {
		t.Fatalf("got %d engines, want %d", len(r.LaTeX), len(latexEngines))
	}
	if !r.LaTeX[0].Found || r.LaTeX[0].Path != "/usr/bin/latexmk" {
		t.Errorf("latexmk = %+v", r.LaTeX[0])
	}
	if r.LaTeX[2].Found {
		t.Errorf("xelatex should be missing: %+v", r.LaTeX[2])
	}
	if !r.Chrome.Found || r.Chrome.Path != chrome {
		t.Errorf("Chrome = %+v", r.Chrome)
	}
}

func TestRunDoctor_NothingInstalled(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "")
	stubLookups(t, nil, "")

	r := runDoctor()
	if r.Status != "warnings" {
		t.Errorf("Status = %q, want warnings", r.Status)
	}
	joined := strings.Join(r.Warnings, "\n")
	if !strings.Contains(joined, "No LaTeX engine") || !strings.Contains(joined, "Chrome/Chromium not found") {
		t.Errorf("Warnings = %v", r.Warnings)
	}
}

func TestRunDoctor_BrowserBinMissing(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", filepath.Join(t.TempDir(), "no-chrome"))
	stubLookups(t, map[string]string{"lualatex": "/opt/tex/lualatex"}, "")

	r := runDoctor()
	if r.Chrome.Found {
		t.Error("Chrome should not be found at a missing ROD_BROWSER_BIN")
	}
	if !strings.Contains(strings.Join(r.Warnings, "\n"), "Chrome not found at") {
		t.Errorf("Warnings = %v", r.Warnings)
	}
}

func TestRunDoctor_CIWithoutNoSandbox(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("CI", "true")

	chrome := writeFile(t, t.TempDir(), "chrome", "")
	stubLookups(t, map[string]string{"pdflatex": "/usr/bin/pdflatex"}, chrome)

	r := runDoctor()
	if !r.Env.CI {
		t.Error("CI should be detected")
	}
	if !strings.Contains(strings.Join(r.Warnings, "\n"), "ROD_NO_SANDBOX") {
		t.Errorf("Warnings = %v", r.Warnings)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output formats
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSON(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "")
	stubLookups(t, map[string]string{"xelatex": "/usr/bin/xelatex"}, "")

	env, stdout, _ := testEnv()
	code := runDoctorCmd([]string{"--json"}, env)
	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if result.Env.OS == "" || result.Status == "" {
		t.Errorf("JSON missing fields: %+v", result)
	}
	if !result.System.TempWritable {
		t.Error("temp dir should be writable in tests")
	}
}

func TestRunDoctorCmd_Text(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "")
	stubLookups(t, map[string]string{"latexmk": "/usr/bin/latexmk"}, "")

	env, stdout, _ := testEnv()
	runDoctorCmd(nil, env)

	for _, want := range []string{
		"sprintdeck doctor",
		"[OK] latexmk: /usr/bin/latexmk",
		"[--] pdflatex: not found",
		"Chrome/Chromium",
		"[WARN] Not found",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	env, _, stderr := testEnv()
	if code := runDoctorCmd([]string{"--yaml"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "invalid usage") {
		t.Errorf("stderr = %q", stderr)
	}
}
