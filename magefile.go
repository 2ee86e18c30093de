//go:build mage

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ---- Config ------------------------------------------------------------------

var (
	CmdDir   = "cmd/server"
	BuildDir = "bin"
	DBFile   = "flightadmin.db"
)

// requiredEnv must be set (in the environment or .env) before the server starts.
var requiredEnv = []string{"API_BASE_URL", "API_KEY"}

// ---- Helpers -----------------------------------------------------------------

func sh(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	return cmd.Run()
}

// helper: run a command with extra env vars
func shEnv(env map[string]string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	return cmd.Run()
}

func out(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

func which(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

func outBinPath() string {
	name := "flightadmin"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(BuildDir, name)
}

// dotenvKeys returns the keys assigned in a .env file, ignoring comments.
func dotenvKeys(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	keys := map[string]bool{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		if k, v, ok := strings.Cut(line, "="); ok && strings.TrimSpace(v) != "" {
			keys[strings.TrimSpace(k)] = true
		}
	}
	return keys, sc.Err()
}

// ---- Tasks -------------------------------------------------------------------

// Bootstrap: fetch modules and install tooling
func Bootstrap() error {
	for _, f := range []func() error{ModDownload, Deps} {
		if err := f(); err != nil {
			return err
		}
	}
	return nil
}

// ModDownload: prefetch all module dependencies into the module cache.
func ModDownload() error {
	return sh("go", "mod", "download", "all")
}

// Deps: install linters and debugging tools
func Deps() error {
	cmds := [][]string{
		{"go", "install", "golang.org/x/tools/cmd/goimports@latest"},
		{"go", "install", "honnef.co/go/tools/cmd/staticcheck@latest"},
		{"go", "install", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest"},
		{"go", "install", "github.com/go-delve/delve/cmd/dlv@latest"},
		{"go", "install", "golang.org/x/vuln/cmd/govulncheck@latest"},
		{"go", "install", "github.com/a-h/templ/cmd/templ@v0.3.943"},
	}
	for _, c := range cmds {
		if err := sh(c[0], c[1:]...); err != nil {
			return err
		}
	}
	return nil
}

// EnvCheck: fail when a required setting is missing from both the environment and .env
func EnvCheck() error {
	fileKeys, err := dotenvKeys(".env")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	var missing []string
	for _, k := range requiredEnv {
		if os.Getenv(k) == "" && !fileKeys[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Gen: regenerate the *_templ.go files from the .templ sources
func Gen() error {
	if !which("templ") {
		return fmt.Errorf("templ not found; run 'mage deps'")
	}
	return sh("templ", "generate", "-path", "interfaces/web/templates")
}

// Build: build the dashboard binary into ./bin
func Build() error {
	if err := os.MkdirAll(BuildDir, 0o755); err != nil {
		return err
	}
	return sh("go", "build",
		"-trimpath", "-buildvcs=false",
		"-ldflags", "-s -w",
		"-o", outBinPath(),
		"./"+CmdDir,
	)
}

// Run: run from source, serving assets from disk so CSS/JS edits show on reload
func Run() error {
	if err := EnvCheck(); err != nil {
		return err
	}
	return shEnv(map[string]string{"ASSETS_DIR": "interfaces/web/templates/assets"}, "go", "run", "./"+CmdDir)
}

// Debug: run with delve (headless)
func Debug() error {
	if !which("dlv") {
		return errors.New("delve (dlv) not found; install it with 'go install github.com/go-delve/delve/cmd/dlv@latest'")
	}
	return sh("dlv", "debug", "./"+CmdDir, "--headless", "--listen=:2345", "--api-version=2", "--accept-multiclient")
}

// Vuln: check for known vulnerabilities
func Vuln() error {
	if !which("govulncheck") {
		return fmt.Errorf("govulncheck not found; run 'mage deps'")
	}
	return sh("govulncheck", "./...")
}

// Test: run unit tests with the race detector (set NO_RACE=1 to skip it)
func Test() error {
	if os.Getenv("NO_RACE") == "1" {
		return sh("go", "test", "./...")
	}
	return shEnv(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "-race", "./...")
}

// Cover: coverage report as coverage.html
func Cover() error {
	args := []string{"test", "-coverprofile=coverage.out", "./..."}
	env := map[string]string{}
	if os.Getenv("NO_RACE") != "1" {
		args = append([]string{"test", "-race"}, args[1:]...)
		env["CGO_ENABLED"] = "1"
	}
	if err := shEnv(env, "go", args...); err != nil {
		return err
	}
	fmt.Println("Coverage HTML -> coverage.html")
	return sh("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Lint: vet + staticcheck + golangci-lint
func Lint() error {
	for _, b := range []string{"staticcheck", "golangci-lint"} {
		if !which(b) {
			return fmt.Errorf("%s not found; run 'mage deps'", b)
		}
	}
	if err := sh("go", "vet", "./..."); err != nil {
		return err
	}
	if err := sh("staticcheck", "./..."); err != nil {
		return err
	}
	return sh("golangci-lint", "run")
}

// Fmt: go fmt + goimports -w
func Fmt() error {
	if err := sh("go", "fmt", "./..."); err != nil {
		return err
	}
	return sh("goimports", "-w", ".")
}

// FmtCheck: fail if formatting/imports needed
func FmtCheck() error {
	var msgs []string
	if o, _ := out("gofmt", "-l", "."); o != "" {
		msgs = append(msgs, "Needs gofmt:\n"+o)
	}
	if o, _ := out("goimports", "-l", "."); o != "" {
		msgs = append(msgs, "Needs goimports:\n"+o)
	}
	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "\n\n"))
	}
	return nil
}

// TidyCheck: ensure go.mod/go.sum are tidy
func TidyCheck() error {
	before, _ := out("git", "status", "--porcelain", "--", "go.mod", "go.sum")
	if err := sh("go", "mod", "tidy"); err != nil {
		return err
	}
	after, _ := out("git", "status", "--porcelain", "--", "go.mod", "go.sum")
	if before != after {
		diff, _ := out("git", "--no-pager", "diff", "--", "go.mod", "go.sum")
		return fmt.Errorf("go.mod/sum changed; run 'go mod tidy' and commit.\n%s", diff)
	}
	return nil
}

// Clean: remove build artifacts, coverage output and the local session store
func Clean() error {
	for _, p := range []string{BuildDir, "coverage.out", "coverage.html"} {
		_ = os.RemoveAll(p)
	}
	matches, _ := filepath.Glob(DBFile + "*")
	for _, m := range matches {
		_ = os.Remove(m)
	}
	return nil
}

// Verify: fast read-only checks
func Verify() error {
	steps := []func() error{FmtCheck, TidyCheck, Lint, Vuln, Build, Test}
	for _, f := range steps {
		if err := f(); err != nil {
			return err
		}
	}
	fmt.Println("Build + checks passed")
	return nil
}
