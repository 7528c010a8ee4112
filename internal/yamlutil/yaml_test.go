package yamlutil_test

// Notes:
// - Marshal's error branch is not tested: goccy/go-yaml only fails on values
//   such as channels or functions, which no caller passes.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2html/internal/yamlutil"
	"github.com/google/go-cmp/cmp"
)

type section struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
}

type testConfig struct {
	Style string   `yaml:"style"`
	TOC   section  `yaml:"toc"`
	Tags  []string `yaml:"tags"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML into Go structs, rejecting unknown keys
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		initial testConfig
		want    testConfig
		wantErr error
	}{
		{
			name: "nested fields",
			data: "style: light\ntoc:\n  enabled: true\n  title: Index\n",
			want: testConfig{Style: "light", TOC: section{Enabled: true, Title: "Index"}},
		},
		{
			name:    "absent fields keep prefilled values",
			data:    "style: light\n",
			initial: testConfig{TOC: section{Enabled: true, Title: "Contents"}},
			want:    testConfig{Style: "light", TOC: section{Enabled: true, Title: "Contents"}},
		},
		{
			name:    "explicit false overrides prefilled true",
			data:    "toc:\n  enabled: false\n",
			initial: testConfig{TOC: section{Enabled: true}},
			want:    testConfig{TOC: section{Enabled: false}},
		},
		{
			name: "sequence",
			data: "tags: [a, b]\n",
			want: testConfig{Tags: []string{"a", "b"}},
		},
		{
			name:    "empty data",
			data:    "",
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.initial
			err := yamlutil.UnmarshalStrict([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UnmarshalStrict() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalStrict_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("style: dark\ncolour: red\n"), &cfg)
		if err == nil {
			t.Fatal("expected error for unknown field, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix 'yamlutil:'", err)
		}
	})

	t.Run("malformed YAML", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := yamlutil.UnmarshalStrict([]byte("tags: [unclosed"), &cfg); err == nil {
			t.Fatal("expected error for malformed YAML, got nil")
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		err := yamlutil.UnmarshalStrict([]byte("style: dark"), nil)
		if !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	original := testConfig{Style: "dark", TOC: section{Enabled: true, Title: "Contents"}, Tags: []string{"x"}}

	data, err := yamlutil.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	out := string(data)
	for _, want := range []string{"style: dark", "toc:\n  enabled: true", "  title: Contents"} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() output missing %q\ngot:\n%s", want, out)
		}
	}

	var decoded testConfig
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error: %v", err)
	}
	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 100

	t.Run("input at limit succeeds", func(t *testing.T) {
		data := []byte("style: x" + strings.Repeat(" ", 92))
		var cfg testConfig
		if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails with sizes", func(t *testing.T) {
		data := []byte("style: x" + strings.Repeat(" ", 93))
		var cfg testConfig
		err := yamlutil.UnmarshalStrict(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("error = %v, want ErrInputTooLarge", err)
		}
		if !strings.Contains(err.Error(), "101 bytes") || !strings.Contains(err.Error(), "max 100") {
			t.Errorf("error should contain sizes, got: %s", err)
		}
	})
}
