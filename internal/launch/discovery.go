package launch

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wagiedev/rigctld-sdk-go/internal/config"
	"github.com/wagiedev/rigctld-sdk-go/internal/errors"
)

const (
	// MinimumVersion is the oldest Hamlib release whose rigctld speaks the
	// extended response protocol with the field labels this SDK expects.
	MinimumVersion = "4.0.0"

	// VersionCheckTimeout bounds the `rigctld --version` probe.
	VersionCheckTimeout = 2 * time.Second
)

var versionPattern = regexp.MustCompile(`([0-9]+\.[0-9]+(?:\.[0-9]+)?)`)

// Config holds configuration for executable discovery.
type Config struct {
	// Program is the executable name or path. Empty means config.DefaultProgram.
	Program string

	// SkipVersionCheck skips the version probe during discovery.
	SkipVersionCheck bool

	// Logger is an optional logger for discovery operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the rigctld binary.
type Discoverer interface {
	// Discover returns the absolute path to the rigctld binary.
	// Returns *errors.DaemonSpawnError with kind ExecutableNotFound otherwise.
	Discover(ctx context.Context) (string, error)
}

type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = (&config.Options{}).WithDefaults().Logger
	}

	return &discoverer{
		cfg: cfg,
		log: log.With("component", "launch"),
	}
}

// Discover locates the rigctld binary and checks its version.
func (d *discoverer) Discover(ctx context.Context) (string, error) {
	program := d.program()

	d.log.Debug("Discovering rigctld binary", "program", program)

	path, err := d.find(program)
	if err != nil {
		d.log.Debug("rigctld not found", "error", err)

		return "", err
	}

	d.log.Debug("Found rigctld binary", "path", path)

	d.checkVersion(ctx, path)

	return path, nil
}

func (d *discoverer) program() string {
	if d.cfg.Program != "" {
		return d.cfg.Program
	}

	return config.DefaultProgram
}

func (d *discoverer) find(program string) (string, error) {
	// An explicit path is used as is, without searching elsewhere.
	if strings.ContainsRune(program, os.PathSeparator) {
		if path, err := exec.LookPath(program); err == nil {
			return path, nil
		}

		return "", notFound(program, []string{program})
	}

	searched := make([]string, 0, 4)

	if path, err := exec.LookPath(program); err == nil {
		return path, nil
	}

	searched = append(searched, "$PATH")

	for _, dir := range []string{"/usr/local/bin", "/usr/bin", "/opt/homebrew/bin"} {
		path := filepath.Join(dir, program)
		searched = append(searched, path)

		if _, err := exec.LookPath(path); err == nil {
			d.log.Debug("Found rigctld at common path", "path", path)

			return path, nil
		}
	}

	d.log.Warn("rigctld not found in any searched paths", "searched_paths", searched)

	return "", notFound(program, searched)
}

// checkVersion logs a warning when the installed rigctld predates
// MinimumVersion. Probe failures are ignored.
func (d *discoverer) checkVersion(ctx context.Context, path string) {
	if d.cfg.SkipVersionCheck {
		d.log.Debug("Skipping rigctld version check (configured)")

		return
	}

	output, err := Version(ctx, path)
	if err != nil {
		d.log.Debug("rigctld version check failed", "error", err)

		return
	}

	version, ok := ParseVersion(output)
	if !ok {
		d.log.Debug("Could not parse rigctld version", "output", output)

		return
	}

	if !Supported(version) {
		d.log.Warn("rigctld is older than the minimum supported version",
			"version", version,
			"minimum_required", MinimumVersion,
		)

		return
	}

	d.log.Debug("rigctld version check passed", "version", version, "minimum", MinimumVersion)
}

// Exists reports whether program resolves on PATH (or, for a path, is an
// executable file). It never runs the program.
func Exists(program string) bool {
	_, err := exec.LookPath(program)

	return err == nil
}

// Version runs `program --version` and returns its output with trailing
// whitespace removed.
func Version(ctx context.Context, program string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, VersionCheckTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, program, "--version").Output()
	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, os.ErrNotExist) {
			return "", notFound(program, nil)
		}

		return "", fmt.Errorf("%s --version: %w", program, err)
	}

	return strings.TrimRight(string(output), " \t\r\n"), nil
}

// ParseVersion extracts the first dotted version number from `--version`
// output such as "rigctld Hamlib 4.5.5 2023-03-23T19:39:45Z".
func ParseVersion(output string) (string, bool) {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}

	return match[1], true
}

// Supported reports whether version is at least MinimumVersion.
func Supported(version string) bool {
	return compareVersions(version, MinimumVersion) >= 0
}

// compareVersions compares two dotted versions.
// Returns -1 if a < b, 0 if a == b, 1 if a > b. Missing parts count as 0.
func compareVersions(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	for i := range 3 {
		aNum := 0
		bNum := 0

		if i < len(aParts) {
			aNum, _ = strconv.Atoi(aParts[i])
		}

		if i < len(bParts) {
			bNum, _ = strconv.Atoi(bParts[i])
		}

		if aNum < bNum {
			return -1
		}

		if aNum > bNum {
			return 1
		}
	}

	return 0
}

func notFound(program string, searched []string) error {
	var err error
	if len(searched) > 0 {
		err = fmt.Errorf("searched %s", strings.Join(searched, ", "))
	}

	return &errors.DaemonSpawnError{
		Kind:    errors.ExecutableNotFound,
		Program: program,
		Err:     err,
	}
}
