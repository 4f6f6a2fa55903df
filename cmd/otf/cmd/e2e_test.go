package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag of c and its subcommands to its default,
// since flag values persist between executions of the same command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFixtures creates scenario files and an isolated config in a temp dir.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"plates.fld": `name "plates"
grid 20
line (2, 5) (17, 5)
line (2, 14) (17, 14)
voltage 0 = 50
voltage 1 = -50
`,
		"ring.fsx": `(scenario
  (name ring)
  (grid 16)
  (circle (xy 8 8) 4)
  (voltage 0 30))`,
		"outside.fld": "grid 20\nline (0, 0) (25, 0)\n",
		"square.fld":  "line (1, 1) (1, 5)\nsquare (1, 1) (1, 5) (5, 5) (5, 1)\n",
		"broken.fld":  "line (0, 0)\n",
		"huge.fld":    "grid 100\ncircle (50, 50) 1099511627776\n",
		"otf.yaml":    "render:\n  color: false\n  scale: 2\nlog:\n  level: warn\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	t.Setenv("OTF_CONFIG", filepath.Join(dir, "otf.yaml"))
	return dir
}

// TestSolveE2E tests the solve command end-to-end
func TestSolveE2E(t *testing.T) {
	dir := writeFixtures(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "built-in scenario",
			args: []string{"solve", "--quiet"},
			wantContain: []string{
				"Scenario: default",
				"Grid:        100 x 100",
				"Conductors:  6",
				"Precision:   truncate",
				"Potential: min",
			},
		},
		{
			name: "text scenario with view",
			args: []string{"solve", filepath.Join(dir, "plates.fld")},
			wantContain: []string{
				"Scenario: plates",
				"Conductors:  2",
				"Metal cells: 32",
				"################",
			},
		},
		{
			name: "sexp scenario float precision",
			args: []string{"solve", "-q", "--precision", "float", "--workers", "2", filepath.Join(dir, "ring.fsx")},
			wantContain: []string{
				"Scenario: ring",
				"Grid:        16 x 16",
				"Precision:   float",
				"Workers:     2",
			},
		},
		{
			name: "size flag overrides scenario",
			args: []string{"solve", "-q", "--size", "30", filepath.Join(dir, "plates.fld")},
			wantContain: []string{
				"Grid:        30 x 30",
			},
		},
		{
			name:    "out of bounds placement",
			args:    []string{"solve", filepath.Join(dir, "outside.fld")},
			wantErr: true,
		},
		{
			name:    "oversized grid",
			args:    []string{"solve", "-q", "--size", "4294967296"},
			wantErr: true,
		},
		{
			name:    "oversized circle",
			args:    []string{"solve", "-q", filepath.Join(dir, "huge.fld")},
			wantErr: true,
		},
		{
			name:    "unknown precision",
			args:    []string{"solve", "--precision", "double"},
			wantErr: true,
		},
		{
			name:    "missing scenario file",
			args:    []string{"solve", filepath.Join(dir, "missing.fld")},
			wantErr: true,
		},
		{
			name:    "too many arguments",
			args:    []string{"solve", "a.fld", "b.fld"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, _, err := execute(t, tt.args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none\nOutput: %s", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}

			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestSolveOutputsE2E checks the PNG and JSON artifacts of solve
func TestSolveOutputsE2E(t *testing.T) {
	dir := writeFixtures(t)
	pngPath := filepath.Join(dir, "field.png")
	jsonPath := filepath.Join(dir, "field.json")

	output, _, err := execute(t, "solve", "-q", "--png", pngPath, "--json", jsonPath, filepath.Join(dir, "plates.fld"))
	if err != nil {
		t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
	}

	for _, want := range []string{"Wrote heatmap", "Wrote field"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing: %q\nGot:\n%s", want, output)
		}
	}

	info, err := os.Stat(pngPath)
	if err != nil {
		t.Fatalf("PNG not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PNG is empty")
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("JSON not written: %v", err)
	}
	var doc struct {
		Name           string `json:"name"`
		Size           int    `json:"size"`
		ConductorCount int    `json:"conductor_count"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Name != "plates" || doc.Size != 20 || doc.ConductorCount != 2 {
		t.Errorf("Expected plates/20/2, got %s/%d/%d", doc.Name, doc.Size, doc.ConductorCount)
	}
}

// TestCheckE2E tests the check command end-to-end
func TestCheckE2E(t *testing.T) {
	dir := writeFixtures(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     string
		wantContain []string
	}{
		{
			name:        "built-in scenario",
			args:        []string{"check"},
			wantContain: []string{"default: 6 conductors on a 100x100 grid"},
		},
		{
			name:        "sexp ring",
			args:        []string{"check", filepath.Join(dir, "ring.fsx")},
			wantContain: []string{"ring: 1 conductors on a 16x16 grid", "Pins:        1"},
		},
		{
			name:    "out of bounds",
			args:    []string{"check", filepath.Join(dir, "outside.fld")},
			wantErr: "out of bounds",
		},
		{
			name:    "unsupported shape",
			args:    []string{"check", filepath.Join(dir, "square.fld")},
			wantErr: "unsupported",
		},
		{
			name:    "syntax error",
			args:    []string{"check", filepath.Join(dir, "broken.fld")},
			wantErr: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, _, err := execute(t, tt.args...)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q but got none", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				if strings.Contains(output, "conductors on a") {
					t.Errorf("failed placement should print no summary, got:\n%s", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestPinsE2E tests the pins command end-to-end
func TestPinsE2E(t *testing.T) {
	dir := writeFixtures(t)

	output, _, err := execute(t, "pins", filepath.Join(dir, "plates.fld"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"PIN", "VOLTAGE", "OWNED", "50", "-50", "line (2,5)-(17,5)", "Conductors: 2"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing: %q\nGot:\n%s", want, output)
		}
	}

	output, _, err = execute(t, "pins", "--json", filepath.Join(dir, "ring.fsx"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var infos []struct {
		Pin     int  `json:"pin"`
		Voltage *int `json:"voltage"`
		Owned   int  `json:"owned"`
	}
	if err := json.Unmarshal([]byte(output), &infos); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, output)
	}
	if len(infos) != 1 || infos[0].Voltage == nil || *infos[0].Voltage != 30 {
		t.Errorf("Expected one pin at 30V, got %s", output)
	}
}

// TestRasterE2E tests the raster command end-to-end
func TestRasterE2E(t *testing.T) {
	writeFixtures(t)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "horizontal line",
			args:        []string{"raster", "line", "0", "0", "3", "0"},
			wantContain: []string{"4 points", "(0,0) (1,0) (2,0) (3,0)"},
		},
		{
			name:        "zero radius circle",
			args:        []string{"raster", "circle", "5", "5", "0"},
			wantContain: []string{"1 points", "(5,5)"},
		},
		{
			name:        "unit circle keeps duplicates",
			args:        []string{"raster", "circle", "0", "0", "1"},
			wantContain: []string{"8 points", "(1,0) (0,1)"},
		},
		{
			name:    "negative radius",
			args:    []string{"raster", "circle", "5", "5", "-1"},
			wantErr: true,
		},
		{
			name:    "not a number",
			args:    []string{"raster", "line", "0", "zero", "3", "0"},
			wantErr: true,
		},
		{
			name:    "missing argument",
			args:    []string{"raster", "line", "0", "0", "3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, _, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

// TestVerboseFlag tests that -v switches the logger to debug on stderr
func TestVerboseFlag(t *testing.T) {
	writeFixtures(t)

	_, stderr, err := execute(t, "check", "-v")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"level=DEBUG", "using built-in scenario", "placed conductors"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("Verbose log missing: %q\nGot:\n%s", want, stderr)
		}
	}

	_, stderr, err = execute(t, "check", "--log-format", "json", "--log-level", "info")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(stderr, `"msg":"placed conductors"`) {
		t.Errorf("Expected JSON log line, got:\n%s", stderr)
	}
}
