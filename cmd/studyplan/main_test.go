package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var idPattern = regexp.MustCompile(`\(ID: ([^)]+)\)`)

// buildBinary compiles the CLI into a temp dir so the workflow runs the real binary.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}

	binPath := filepath.Join(t.TempDir(), "studyplan")
	build := exec.Command(goBin, "build", "-o", binPath, ".")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build CLI: %v\nOutput: %s", err, out)
	}
	return binPath
}

// isolatedEnv points HOME, config and database at tempDir.
func isolatedEnv(tempDir string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "STUDYPLAN_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("STUDYPLAN_CONFIG=%s", filepath.Join(tempDir, ".config", "studyplan", "config.yaml")),
		fmt.Sprintf("STUDYPLAN_DB=%s", filepath.Join(tempDir, ".config", "studyplan", "studyplan.db")),
	)
}

func runCmd(t *testing.T, path, dir string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func mustContain(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath := buildBinary(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)
	run := func(args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, tempDir, env, args...)
	}

	t.Log("Initializing storage...")
	mustContain(t, run("init"), "Initialized studyplan storage")

	t.Log("Adding a weekly lecture...")
	out := run("event", "add", "Anatomy lecture", "-d", "2030-01-07", "-s", "08:15", "-e", "09:45",
		"-c", "lecture", "-l", "Hall A", "-r", "weekly", "--until", "2030-02-04")
	m := idPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("event add printed no id:\n%s", out)
	}
	eventID := m[1]

	mustContain(t, run("event", "list", "-d", "2030-01-07"), "Anatomy lecture", "Hall A")
	mustContain(t, run("event", "occurrences", eventID, "--from", "2030-01-01", "--to", "2030-02-28"),
		"2030-01-14", "2030-02-04")

	t.Log("Recording an exam...")
	run("exam", "add", "Physiology", "-d", "2030-02-01", "-s", "passed", "-g", "1.7")
	mustContain(t, run("exam", "list"), "Physiology", "1.7")

	mustContain(t, run("calendar", "-s", "2030-01-07"), "January 2030", "Anatomy lecture")
	run("stats")

	t.Log("Round-tripping a snapshot...")
	snapshot := filepath.Join(tempDir, "snapshot.json")
	run("export", "-o", snapshot)
	run("event", "delete", eventID, "-y")
	if out := run("event", "list", "-d", "2030-01-07"); strings.Contains(out, "Anatomy lecture") {
		t.Errorf("deleted event still listed:\n%s", out)
	}
	run("import", snapshot, "-y")
	mustContain(t, run("event", "list", "-d", "2030-01-07"), "Anatomy lecture")

	mustContain(t, run("ics", "-o", "-"), "BEGIN:VCALENDAR", "SUMMARY:Anatomy lecture", "RRULE:FREQ=WEEKLY")
	mustContain(t, run("doctor"), "Database reachable")
}

func TestImportRejectsPartialSnapshot(t *testing.T) {
	cliPath := buildBinary(t)
	tempDir := t.TempDir()
	env := isolatedEnv(tempDir)

	runCmd(t, cliPath, tempDir, env, "init")

	bad := filepath.Join(tempDir, "partial.json")
	if err := os.WriteFile(bad, []byte(`{"events": []}`), 0600); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(cliPath, "import", bad, "-y")
	cmd.Env = env
	cmd.Dir = tempDir
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("import of a partial snapshot succeeded:\n%s", out)
	}
	mustContain(t, string(out), "Error:", "hint:")
}
