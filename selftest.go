package mdfront

import (
	"fmt"
	"strings"
)

// SelfTestReport is the outcome of checking a document's output against
// its reserved expectedOutput/expectedError metadata fields.
type SelfTestReport struct {
	Checked  bool // at least one expectation was present
	Failures []string
}

// Passed reports whether every present expectation held. A document with
// no expectations passes vacuously with Checked false.
func (r SelfTestReport) Passed() bool {
	return len(r.Failures) == 0
}

// RunSelfTest compares an actual run result against the reserved self-test
// fields. expectedOutput must match the output exactly (modulo trailing
// whitespace); expectedError must be a substring of the actual error.
func RunSelfTest(m Metadata, output string, runErr error) SelfTestReport {
	var report SelfTestReport

	if want, ok := m.ExpectedOutput(); ok {
		report.Checked = true
		if strings.TrimRight(output, "\n") != strings.TrimRight(want, "\n") {
			report.Failures = append(report.Failures,
				fmt.Sprintf("output mismatch: got %d bytes, want %d bytes", len(output), len(want)))
		}
	}

	if want, ok := m.ExpectedError(); ok {
		report.Checked = true
		switch {
		case runErr == nil:
			report.Failures = append(report.Failures,
				fmt.Sprintf("expected error containing %q, got none", want))
		case !strings.Contains(runErr.Error(), want):
			report.Failures = append(report.Failures,
				fmt.Sprintf("error %q does not contain %q", runErr.Error(), want))
		}
	}

	return report
}
