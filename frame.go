package main

import "strings"

// journalctl prints an introductory banner ahead of any JSON content,
// optionally prefixed with "-- " depending on version.
const bannerText = "Logs begin at"

// A frameAssembler reconstructs complete JSON record blocks from a
// line-oriented journal stream.
//
// In single-line mode (the journalctl "json" output) every line is one
// complete record. In multiline mode (the legacy pretty-printed array
// output) a record spans several lines and ends on a line consisting of
// exactly "},". That comparison is exact text: a record whose last string
// value happens to end a pretty-printed line with "}," terminates early,
// and the final record of a finite array (closed by "}" and "]") is never
// emitted. Follow-mode streams never close the array, so neither case
// arises there.
type frameAssembler struct {
	multiline bool
	lines     []string
}

func newFrameAssembler(multiline bool) *frameAssembler {
	return &frameAssembler{multiline: multiline}
}

// push consumes one raw input line. When the line completes a record, the
// joined record text is returned with ok=true and the accumulator is
// cleared for the next record.
func (a *frameAssembler) push(raw string) (block string, ok bool) {
	line := strings.TrimRight(raw, " \t\r\n")

	if !a.multiline {
		a.lines = append(a.lines, line)
		return a.emit()
	}

	switch {
	case strings.HasPrefix(strings.TrimPrefix(line, "-- "), bannerText):
		return "", false
	case line == "[":
		return "", false
	case line == "},":
		a.lines = append(a.lines, "}")
		return a.emit()
	default:
		a.lines = append(a.lines, line)
		return "", false
	}
}

// emit joins and clears the accumulator. The backing array is reused.
func (a *frameAssembler) emit() (string, bool) {
	block := strings.Join(a.lines, "\n")
	a.lines = a.lines[:0]
	return block, true
}
