package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"picdex/internal/config"
	"picdex/internal/deps"
	"picdex/internal/faults"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable checks for the given config plus the scan
// roots of the upcoming run.
func RunAll(cfg *config.Config, roots []string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		results = append(results, result)
	}

	results = append(results, CheckDirectoryAccess("Catalog directory", filepath.Dir(cfg.Paths.CatalogPath)))
	if cfg.CollectEnabled() {
		results = append(results, CheckDirectoryAccess("Collection directory", cfg.Paths.CollectDir))
	}

	for _, root := range roots {
		results = append(results, CheckDirectoryReadable(fmt.Sprintf("Root %s", root), root))
	}

	return results
}

// Verify runs all checks and converts any failure into a setup error so the
// CLI can abort before touching a single file. Missing required binaries
// short-circuit with their own message; directory problems are aggregated.
func Verify(cfg *config.Config, roots []string) error {
	if missing := deps.MissingRequired(CheckSystemDeps(cfg)); len(missing) > 0 {
		return faults.Wrap(faults.ErrSetup, "preflight", "check dependencies",
			"missing required binaries: "+strings.Join(missing, ", "), nil)
	}

	var failures []string
	for _, result := range RunAll(cfg, roots) {
		if !result.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return faults.Wrap(faults.ErrSetup, "preflight", "verify environment", strings.Join(failures, "; "), nil)
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be
// listed. Scan roots are never written to, so write access is not required.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckSystemDeps evaluates the external binaries the run needs.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "Content sniffer",
			Command:     cfg.Scanner.SniffCommand,
			Description: "Required for type classification",
		},
	}
	return deps.CheckBinaries(requirements)
}
