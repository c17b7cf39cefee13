package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-sprintdeck/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML into Go values
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Name != "test" {
					t.Errorf("Name = %q, want %q", cfg.Name, "test")
				}
				if cfg.Count != 42 {
					t.Errorf("Count = %d, want %d", cfg.Count, 42)
				}
				if !cfg.Enabled {
					t.Error("Enabled = false, want true")
				}
			},
		},
		{
			name: "sequence of mappings",
			data: []byte("- accomplishments:\n    - one\n- q_and_a:\n    description: hi\n"),
			dest: &[]map[string]any{},
			check: func(t *testing.T, v any) {
				records := *v.(*[]map[string]any)
				if len(records) != 2 {
					t.Fatalf("len = %d, want 2", len(records))
				}
				if _, ok := records[1]["q_and_a"]; !ok {
					t.Errorf("second record missing q_and_a key: %v", records[1])
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "whitespace only",
			data:    []byte("  \n\t\n"),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields decode", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := yamlutil.UnmarshalStrict([]byte("name: strict\ncount: 10"), &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Name != "strict" || cfg.Count != 10 {
			t.Errorf("cfg = %+v, want name=strict count=10", cfg)
		}
	})

	t.Run("unknown field fails", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: test\nunknown_field: value"), &cfg)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix 'yamlutil:'", err)
		}
	})

	t.Run("empty data fails", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.UnmarshalStrict(nil, &testConfig{})
		if !errors.Is(err, yamlutil.ErrNilData) {
			t.Errorf("errors.Is(err, ErrNilData) = false, got %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestScalarAt - Reads scalars as written in the source
// ---------------------------------------------------------------------------

func TestScalarAt(t *testing.T) {
	t.Parallel()

	src := []byte(`
- bars:
    - {name: a, progress: 50.0}
    - {name: b, progress: "50%"}
    - {name: c, progress: 007}
- tagged: !!str 1.50
  note: |
    line one
- ref: &x 12
  copy: *x
`)
	f, err := yamlutil.ParseFile(src)
	if err != nil {
		t.Fatalf("ParseFile() unexpected error: %v", err)
	}

	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "$[0].bars[0].progress", want: "50.0", wantOK: true},
		{path: "$[0].bars[1].progress", want: "50%", wantOK: true},
		{path: "$[0].bars[2].progress", want: "007", wantOK: true},
		{path: "$[1].tagged", want: "1.50", wantOK: true},
		{path: "$[1].note", want: "line one\n", wantOK: true},
		{path: "$[2].copy", wantOK: false},
		{path: "$[0].bars", wantOK: false},
		{path: "$[9].bars[0].progress", wantOK: false},
		{path: "not a path", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := yamlutil.ScalarAt(f, tt.path)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ScalarAt(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseFile_Errors(t *testing.T) {
	t.Parallel()

	if _, err := yamlutil.ParseFile([]byte("  \n")); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("ParseFile(blank) error = %v, want ErrNilData", err)
	}
	if _, err := yamlutil.ParseFile([]byte("- {a: [unclosed\n")); err == nil {
		t.Error("ParseFile(broken) expected error")
	}
	if _, ok := yamlutil.ScalarAt(nil, "$[0]"); ok {
		t.Error("ScalarAt(nil) ok = true")
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Modifies the global MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input exceeding limit fails", func(t *testing.T) {
		yamlutil.MaxInputSize = 10
		var cfg testConfig
		err := yamlutil.Unmarshal([]byte("name: a-rather-long-name"), &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "max 10") {
			t.Errorf("error should contain max size, got: %s", err)
		}
	})

	t.Run("strict also enforces limit", func(t *testing.T) {
		yamlutil.MaxInputSize = 10
		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: a-rather-long-name"), &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}
