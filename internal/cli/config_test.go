package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/calvinalkan/tasks/internal/cli"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	err = os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Tests for print-config command.

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("print-config")

	cli.AssertContains(t, stdout, "data_file="+filepath.Join(c.Dir, "tasks.csv"))
	cli.AssertContains(t, stdout, "color=auto")
	cli.AssertContains(t, stdout, "sometime=2023-12-31")
	cli.AssertContains(t, stdout, "default_view=tag")
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_From_Config_File_With_Comments_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".tasks.json"), `{
		// kept next to the project
		"data_file": "todo/list.csv",
		"color": "never",
	}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "data_file="+filepath.Join(c.Dir, "todo", "list.csv"))
	cli.AssertContains(t, stdout, "color=never")
	cli.AssertContains(t, stdout, "project_config="+filepath.Join(c.Dir, ".tasks.json"))
}

func Test_Print_Config_Explicit_Config_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".tasks.json"), `{"data_file": "project.csv"}`)
	writeFile(t, filepath.Join(c.Dir, "custom.json"), `{"data_file": "custom.csv"}`)

	stdout := c.MustRun("-c", "custom.json", "print-config")
	cli.AssertContains(t, stdout, "data_file="+filepath.Join(c.Dir, "custom.csv"))

	stdout = c.MustRun("--config=custom.json", "print-config")
	cli.AssertContains(t, stdout, "data_file="+filepath.Join(c.Dir, "custom.csv"))
}

func Test_Print_Config_File_Flag_Overrides_Config_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".tasks.json"), `{"data_file": "from-file.csv"}`)

	stdout := c.MustRun("--file=from-cli.csv", "print-config")
	cli.AssertContains(t, stdout, "data_file="+filepath.Join(c.Dir, "from-cli.csv"))
}

func Test_Config_Global_And_Project_Merge_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	xdg := t.TempDir()
	c.Env["XDG_CONFIG_HOME"] = xdg

	globalPath := filepath.Join(xdg, "tasks", "config.json")
	writeFile(t, globalPath, `{"sometime": "2030-01-01", "default_view": "due"}`)
	writeFile(t, filepath.Join(c.Dir, ".tasks.json"), `{"default_view": "tag"}`)

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "sometime=2030-01-01")
	cli.AssertContains(t, stdout, "default_view=tag")
	cli.AssertContains(t, stdout, "global_config="+globalPath)
	cli.AssertContains(t, stdout, "project_config="+filepath.Join(c.Dir, ".tasks.json"))
}

func Test_Config_XDG_Data_Home_Sets_Default_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	xdg := t.TempDir()
	c.Env["XDG_DATA_HOME"] = xdg

	stdout := c.MustRun("print-config")
	cli.AssertContains(t, stdout, "data_file="+filepath.Join(xdg, "tasks", "tasks.csv"))
}

func Test_Config_Sometime_Is_Used_By_Add_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	writeFile(t, filepath.Join(c.Dir, ".tasks.json"), `{"sometime": "2099-12-31"}`)

	c.MustAdd("Eventually", "misc", "4", "1")
	cli.AssertContains(t, c.ReadDataFile(), "1,Eventually,Todo,2099-12-31,Low,misc\n")

	stdout := c.MustRun("ls", "--due", "sometime")
	cli.AssertContains(t, stdout, "Eventually")
}

// Tests for config errors.

func Test_Config_Errors_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name       string
		config     string
		args       []string
		wantStderr string
	}{
		{name: "explicit config missing", args: []string{"-c", "nonexistent.json", "print-config"}, wantStderr: "config file not found"},
		{name: "invalid json", config: `{invalid json}`, args: []string{"print-config"}, wantStderr: "invalid config file"},
		{name: "empty data file", config: `{"data_file": ""}`, args: []string{"print-config"}, wantStderr: "data file cannot be empty"},
		{name: "bad color", config: `{"color": "sometimes"}`, args: []string{"print-config"}, wantStderr: "color must be auto|always|never"},
		{name: "bad sometime", config: `{"sometime": "someday"}`, args: []string{"print-config"}, wantStderr: "sometime"},
		{name: "bad default view", config: `{"default_view": "calendar"}`, args: []string{"ls"}, wantStderr: "invalid view"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			if tt.config != "" {
				writeFile(t, filepath.Join(c.Dir, ".tasks.json"), tt.config)
			}

			stderr := c.MustFail(tt.args...)
			cli.AssertContains(t, stderr, tt.wantStderr)
		})
	}
}

func Test_Cwd_Flag_Selects_Work_Dir_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	other := t.TempDir()

	stdout := c.MustRun("-C", other, "print-config")
	cli.AssertContains(t, stdout, "effective_cwd="+other)
	cli.AssertContains(t, stdout, "data_file="+filepath.Join(other, "tasks.csv"))
}
