package mdfront

import "strings"

// fenceMarker delimits the front-fence header: a line that is exactly "---".
const fenceMarker = "---"

// ValidateFence runs a cheap heuristic over the header region before the
// codec invests in a deep parse. Text without a leading fence passes
// trivially (no header is valid). Within the captured header region an odd,
// nonzero count of double quotes fails: different codec versions report an
// unterminated quoted scalar inconsistently, and this normalizes that one
// failure mode. It is deliberately not a grammar check; everything else is
// the codec's call.
func ValidateFence(text string) error {
	header, ok := headerRegion(text)
	if !ok {
		return nil
	}
	quotes := strings.Count(header, `"`)
	if quotes > 0 && quotes%2 != 0 {
		return &MalformedHeaderError{Reason: "unbalanced quotes"}
	}
	return nil
}

// headerRegion captures the text between the opening fence and the next
// fence line. When no closing fence exists the region is everything after
// the opening marker; final validity is the codec's to decide.
func headerRegion(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || !isFenceLine(lines[0]) {
		return "", false
	}
	for i := 1; i < len(lines); i++ {
		if isFenceLine(lines[i]) {
			return strings.Join(lines[1:i], "\n"), true
		}
	}
	return strings.Join(lines[1:], "\n"), true
}

// isFenceLine accepts a trailing \r so CRLF input fences still match.
func isFenceLine(line string) bool {
	return strings.TrimSuffix(line, "\r") == fenceMarker
}
