package main

// Notes:
// - run: commands are exercised end to end through run() with buffered
//   stdout/stderr and a fixed clock. Outlines live in t.TempDir().
// - Browser-backed PDF handouts are not exercised; see handout_test.go.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestSplitCommand - Command selection
// ---------------------------------------------------------------------------

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
		wantErr  error
	}{
		{name: "no args renders", args: nil, wantCmd: "render"},
		{name: "explicit render", args: []string{"render", "a.yaml"}, wantCmd: "render", wantRest: []string{"a.yaml"}},
		{name: "outline path renders", args: []string{"a.yml", "-o", "x"}, wantCmd: "render", wantRest: []string{"a.yml", "-o", "x"}},
		{name: "flag first renders", args: []string{"--strict"}, wantCmd: "render", wantRest: []string{"--strict"}},
		{name: "handout", args: []string{"handout", "-f", "md"}, wantCmd: "handout", wantRest: []string{"-f", "md"}},
		{name: "watch", args: []string{"watch"}, wantCmd: "watch", wantRest: []string{}},
		{name: "help flag", args: []string{"--help"}, wantCmd: "help"},
		{name: "version flag", args: []string{"--version"}, wantCmd: "version"},
		{name: "typo", args: []string{"rendr"}, wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, rest, err := splitCommand(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("splitCommand() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitCommand() unexpected error: %v", err)
			}
			if cmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if len(rest) != 0 || len(tt.wantRest) != 0 {
				if diff := cmp.Diff(tt.wantRest, rest); diff != "" {
					t.Errorf("rest mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRun_Basics - version, help, usage errors
// ---------------------------------------------------------------------------

func TestRun_Version(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "version")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if stdout != "sprintdeck "+Version+"\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "rendr")
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr, "unknown command: rendr") || !strings.Contains(stderr, "Usage: sprintdeck") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_FlagErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown flag is a usage error", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCLI(t, "render", "--no-such-flag")
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d (stderr %q)", code, ExitUsage, stderr)
		}
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		t.Parallel()

		code, _, stderr := runCLI(t, "render", "--help")
		if code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stderr, "Usage: sprintdeck render") {
			t.Errorf("stderr should carry render usage, got %q", stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRun_Render - Deck output
// ---------------------------------------------------------------------------

func TestRun_RenderToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "sprint7.yaml", readGolden(t, "sprint7.yaml"))

	code, stdout, stderr := runCLI(t, path)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if diff := cmp.Diff(readGolden(t, "sprint7.tex"), stdout); diff != "" {
		t.Errorf("deck mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RenderToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "retro.yaml", minimalOutline)
	out := filepath.Join(dir, "build", "deck.tex")

	code, stdout, stderr := runCLI(t, "render", path, "-o", out, "--author", "Platform", "--date", "auto:long")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty when -o is set, got %q", stdout)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, want := range []string{`\author{Platform}`, `\date{April 7, 2023}`, `\title{Retro}`} {
		if !strings.Contains(string(got), want) {
			t.Errorf("deck missing %q", want)
		}
	}
	if strings.Contains(string(got), `\author{Ops}`) {
		t.Error("flag override should replace the outline author")
	}
}

func TestRun_RenderBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "alpha.yaml", minimalOutline)
	b := writeFile(t, dir, "beta.yml", readGolden(t, "sprint7.yaml"))
	outDir := filepath.Join(dir, "decks")

	code, _, stderr := runCLI(t, a, b, "-o", outDir, "-w", "2")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stderr, "rendered 2 deck(s)") {
		t.Errorf("stderr = %q, want summary", stderr)
	}

	beta, err := os.ReadFile(filepath.Join(outDir, "beta.tex"))
	if err != nil {
		t.Fatalf("reading beta.tex: %v", err)
	}
	if diff := cmp.Diff(readGolden(t, "sprint7.tex"), string(beta)); diff != "" {
		t.Errorf("beta.tex mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(outDir, "alpha.tex")); err != nil {
		t.Errorf("alpha.tex not written: %v", err)
	}
}

func TestRun_RenderBatchNeedsOutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", minimalOutline)
	b := writeFile(t, dir, "b.yaml", minimalOutline)

	code, _, stderr := runCLI(t, a, b)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d (stderr %q)", code, ExitUsage, stderr)
	}
}

func TestRun_RenderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outline  string
		args     []string
		wantCode int
		wantText string
	}{
		{
			name:     "missing title slide",
			outline:  "- q_and_a: {description: x}\n",
			wantCode: ExitUsage,
			wantText: "hint: add a title_slide entry",
		},
		{
			name:     "missing title slide with a date override",
			outline:  "- q_and_a: {description: x}\n",
			args:     []string{"--date", "auto"},
			wantCode: ExitUsage,
			wantText: "hint: add a title_slide entry",
		},
		{
			name:     "missing title slide with partial overrides",
			outline:  "- q_and_a: {description: x}\n",
			args:     []string{"--title", "T", "--author", "A", "--date", "D"},
			wantCode: ExitUsage,
			wantText: "hint: add a title_slide entry",
		},
		{
			name:     "strict unknown tag",
			outline:  minimalOutline + "- retro: [x]\n",
			args:     []string{"--strict"},
			wantCode: ExitUsage,
			wantText: "known tags: title_slide",
		},
		{
			name:     "syntax error",
			outline:  "- q_and_a: {description: [oops\n",
			wantCode: ExitUsage,
			wantText: "hint: the outline must be a YAML list",
		},
		{
			name:     "missing field",
			outline:  "- title_slide: {title: t}\n",
			wantCode: ExitUsage,
			wantText: "title_slide.author",
		},
		{
			name:     "bad date format",
			outline:  minimalOutline,
			args:     []string{"--date", "auto:"},
			wantCode: ExitUsage,
			wantText: "invalid date format",
		},
		{
			name:     "bad workers",
			outline:  minimalOutline,
			args:     []string{"-w", "-1"},
			wantCode: ExitUsage,
			wantText: "invalid worker count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "outline.yaml", tt.outline)
			code, stdout, stderr := runCLI(t, append([]string{"render", path}, tt.args...)...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr, tt.wantText) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantText)
			}
			if stdout != "" {
				t.Errorf("no partial deck expected, got %q", stdout)
			}
		})
	}
}

func TestRun_RenderMissingFile(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, filepath.Join(t.TempDir(), "nope.yaml"))
	if code != ExitIO {
		t.Errorf("exit code = %d, want %d (stderr %q)", code, ExitIO, stderr)
	}
}

func TestRun_RenderUnknownSectionLogged(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "outline.yaml", minimalOutline+"- retro: [x]\n")

	code, stdout, stderr := runCLI(t, path, "-v")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if strings.Contains(stdout, "retro") {
		t.Error("unknown section should not reach the deck")
	}
	if !strings.Contains(stderr, "skipping unknown section") {
		t.Errorf("verbose run should log the skip, got %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRun_Config - Config file layering
// ---------------------------------------------------------------------------

func TestRun_RenderWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "outline.yaml", minimalOutline+"- retro: [x]\n")
	cfg := writeFile(t, dir, "team.yaml", `
render:
  strict: true
titleSlide:
  title: From Config
  author: Config Author
`)

	code, _, stderr := runCLI(t, path, "-c", cfg)
	if code != ExitUsage {
		t.Fatalf("strict from config should fail, exit code = %d (stderr %q)", code, stderr)
	}

	path = writeFile(t, dir, "clean.yaml", minimalOutline)
	code, stdout, stderr := runCLI(t, path, "-c", cfg, "--title", "From Flag")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, `\title{From Flag}`) || !strings.Contains(stdout, `\author{Config Author}`) {
		t.Errorf("flags should beat config, config should beat outline:\n%s", stdout)
	}
}

func TestRun_ConfigTitleOverridesNeedTitleSlide(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "outline.yaml", "- q_and_a: {description: x}\n")
	cfg := writeFile(t, dir, "team.yaml", `
titleSlide:
  date: auto
`)

	code, stdout, stderr := runCLI(t, path, "-c", cfg)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d (stderr %q)", code, ExitUsage, stderr)
	}
	if stdout != "" || !strings.Contains(stderr, "no title_slide section") {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}

	code, stdout, stderr = runCLI(t, path, "-c", cfg, "--title", "T", "--author", "A", "--logo", "a.png")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, want := range []string{`\title{T}`, `\author{A}`, `\date{2023-04-07}`, `\includegraphics[height=1cm]{a.png}`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestRun_ConfigNotFound(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "outline.yaml", minimalOutline)
	code, _, stderr := runCLI(t, path, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr, "config file not found") || !strings.Contains(stderr, "hint: use --config") {
		t.Errorf("stderr = %q", stderr)
	}
}
