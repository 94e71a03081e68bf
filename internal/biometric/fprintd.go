package biometric

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"os/user"
	"runtime"
	"strings"
)

const (
	fprintdList   = "fprintd-list"
	fprintdVerify = "fprintd-verify"
)

// CommandRunner runs a command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Fprintd drives the Linux fprintd daemon through its command line tools.
type Fprintd struct {
	User     string
	Run      CommandRunner
	LookPath func(string) (string, error)
	GOOS     string
}

func NewFprintd() *Fprintd {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return &Fprintd{User: name, Run: execRunner, LookPath: exec.LookPath, GOOS: runtime.GOOS}
}

func (f *Fprintd) Name() string { return "fprintd" }

func (f *Fprintd) Supported() bool {
	if f.GOOS != "linux" {
		return false
	}
	for _, bin := range []string{fprintdList, fprintdVerify} {
		if _, err := f.LookPath(bin); err != nil {
			return false
		}
	}
	return true
}

func (f *Fprintd) args() []string {
	if f.User == "" {
		return nil
	}
	return []string{f.User}
}

func (f *Fprintd) Probe(ctx context.Context) (ProbeReport, error) {
	out, err := f.Run(ctx, fprintdList, f.args()...)
	report := parseFprintdList(out)
	if err != nil && report.Reason == "" {
		return ProbeReport{}, fmt.Errorf("%s: %w", fprintdList, err)
	}
	return report, nil
}

// parseFprintdList reads fprintd-list output. A device with at least one
// enrolled finger counts as available.
func parseFprintdList(out []byte) ProbeReport {
	var (
		device   bool
		enrolled int
		reason   string
	)
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "no devices"):
			reason = "no fingerprint reader found"
		case strings.HasPrefix(lower, "device at"), strings.HasPrefix(lower, "using device"):
			device = true
		case strings.Contains(lower, "no fingers enrolled"):
			reason = "no fingerprints enrolled"
		case strings.HasPrefix(line, "- #"):
			enrolled++
		}
	}
	if device && enrolled > 0 {
		return ProbeReport{Available: true, Type: "fingerprint"}
	}
	if reason == "" && device {
		reason = "no fingerprints enrolled"
	}
	return ProbeReport{Type: typeIfDevice(device), Reason: reason}
}

func typeIfDevice(device bool) string {
	if device {
		return "fingerprint"
	}
	return ""
}

// Prompt runs fprintd-verify. The terminal stays the prompt surface, so the
// reason text is shown by the caller rather than passed to fprintd.
func (f *Fprintd) Prompt(ctx context.Context, req PromptRequest) error {
	out, err := f.Run(ctx, fprintdVerify, f.args()...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return ErrSystemCancel
		}
		return ErrAppCancel
	}
	res := verifyResult(out)
	if err != nil && (res == nil || errors.Is(res, errUnrecognised)) {
		return fmt.Errorf("%s: %w", fprintdVerify, err)
	}
	return res
}

// verifyResult maps the last "Verify result:" line onto an error.
func verifyResult(out []byte) error {
	var last string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "Verify result:") {
			last = strings.TrimSpace(strings.TrimPrefix(line, "Verify result:"))
		}
	}
	switch {
	case last == "":
		if bytes.Contains(bytes.ToLower(out), []byte("no fingers enrolled")) {
			return ErrNotEnrolled
		}
		return errUnrecognised
	case strings.HasPrefix(last, "verify-match"):
		return nil
	case strings.HasPrefix(last, "verify-no-match"):
		return ErrNoMatch
	case strings.HasPrefix(last, "verify-disconnected"):
		return ErrSystemCancel
	default:
		return fmt.Errorf("fprintd: %s", last)
	}
}

var errUnrecognised = errors.New("fprintd: unrecognised verify output")
