package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectProjectName(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string // filename -> content
		want  string            // "" means the temp dir base name
	}{
		{
			name:  "no manifest files falls back to directory name",
			files: map[string]string{},
			want:  "",
		},
		{
			name: "go.mod module path",
			files: map[string]string{
				"go.mod": "module github.com/acme/widget\n\ngo 1.23\n",
			},
			want: "widget",
		},
		{
			name: "go.mod major version suffix is dropped",
			files: map[string]string{
				"go.mod": "module github.com/acme/widget/v2\n",
			},
			want: "widget",
		},
		{
			name: "go.mod quoted module path",
			files: map[string]string{
				"go.mod": "// comment\nmodule \"example.com/quoted\"\n",
			},
			want: "quoted",
		},
		{
			name: "go.mod wins over package.json",
			files: map[string]string{
				"go.mod":       "module example.com/gopher\n",
				"package.json": `{"name": "node-loses"}`,
			},
			want: "gopher",
		},
		{
			name: "pyproject.toml PEP 621 [project] name",
			files: map[string]string{
				"pyproject.toml": `[project]
name = "my-python-project"
`,
			},
			want: "my-python-project",
		},
		{
			name: "pyproject.toml [tool.poetry] name when [project] absent",
			files: map[string]string{
				"pyproject.toml": `[tool.poetry]
name = "my-poetry-project"
`,
			},
			want: "my-poetry-project",
		},
		{
			name: "package.json top-level name",
			files: map[string]string{
				"package.json": `{"name": "my-node-project", "version": "1.0.0"}`,
			},
			want: "my-node-project",
		},
		{
			name: "Cargo.toml [package] name",
			files: map[string]string{
				"Cargo.toml": `[package]
name = "my-rust-project"
`,
			},
			want: "my-rust-project",
		},
		{
			name: "malformed pyproject.toml falls through to package.json",
			files: map[string]string{
				"pyproject.toml": `not valid [[[ toml`,
				"package.json":   `{"name": "fallback-node"}`,
			},
			want: "fallback-node",
		},
		{
			name: "malformed package.json falls through to Cargo.toml",
			files: map[string]string{
				"package.json": `not valid json`,
				"Cargo.toml": `[package]
name = "fallback-rust"
`,
			},
			want: "fallback-rust",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, filepath.Join(dir, name), content)
			}
			want := tt.want
			if want == "" {
				want = filepath.Base(dir)
			}
			if got := DetectProjectName(dir); got != want {
				t.Errorf("DetectProjectName() = %q, want %q", got, want)
			}
		})
	}
}

func TestLoadDetectsProjectName(t *testing.T) {
	t.Run("auto-detects from go.mod when project.name empty", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "[selector]\nstyle = \"list\"\n")
		writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/detected\n")

		cfg, err := Load(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Project.Name != "detected" {
			t.Errorf("Project.Name = %q, want %q", cfg.Project.Name, "detected")
		}
	})

	t.Run("explicit project.name is not overwritten", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, FileName), "[project]\nname = \"explicit-name\"\n")
		writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/should-not-appear\n")

		cfg, err := Load(filepath.Join(dir, FileName))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Project.Name != "explicit-name" {
			t.Errorf("Project.Name = %q, want %q", cfg.Project.Name, "explicit-name")
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
