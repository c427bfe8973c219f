package service

import (
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"wordleclub/models"
)

// ParsedShare is the structured form of a pasted Wordle share text
type ParsedShare struct {
	PuzzleNumber int
	Score        int
	Grid         string
}

// Header pattern: the word "Wordle", a puzzle number optionally grouped with
// commas, a score token (1-6 or X), the fixed "/6" suffix, and an optional
// hard-mode asterisk. The game word and the score letter match any case.
var (
	headerPattern   = regexp.MustCompile(`(?i)^wordle\s+([0-9][0-9,]*)\s+([1-6X])/6\*?$`)
	headerCandidate = regexp.MustCompile(`(?i)^wordle\b`)
)

// variationSelector is appended by some platforms after emoji squares and
// must be stripped before the grid is stored
const variationSelector = '️'

// gridMarkers are the recognized result squares: two no-match variants
// (light and dark theme), yellow, and green
var gridMarkers = map[rune]bool{
	'⬛': true,
	'⬜': true,
	'🟨': true,
	'🟩': true,
}

// ParseShareText extracts the puzzle number, score and guess grid from a
// pasted Wordle share. It returns ErrNoHeader when nothing resembles a
// header, and ErrMalformedHeader when a header-like line cannot be parsed.
// Grid extraction is best-effort and never fails: an empty grid is accepted.
func ParseShareText(content string) (*ParsedShare, error) {
	// Normalize line endings and trim the block as a whole
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSpace(content)

	lines := strings.Split(content, "\n")

	headerIndex := -1
	var match []string
	sawCandidate := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := headerPattern.FindStringSubmatch(trimmed); m != nil {
			headerIndex = i
			match = m
			break
		}
		if headerCandidate.MatchString(trimmed) {
			sawCandidate = true
		}
	}

	if headerIndex == -1 {
		if sawCandidate {
			return nil, ErrMalformedHeader
		}
		return nil, ErrNoHeader
	}

	puzzleNumber, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return nil, ErrMalformedHeader
	}

	var score int
	if strings.EqualFold(match[2], "X") {
		score = models.ScoreFailed
	} else {
		score, err = strconv.Atoi(match[2])
		if err != nil {
			return nil, ErrMalformedHeader
		}
	}

	grid := collectGrid(lines[headerIndex+1:])

	log.WithFields(log.Fields{
		"puzzleNumber": puzzleNumber,
		"score":        score,
		"gridRows":     len(strings.Split(grid, "\n")),
	}).Debug("Parsed Wordle share text")

	return &ParsedShare{
		PuzzleNumber: puzzleNumber,
		Score:        score,
		Grid:         grid,
	}, nil
}

// collectGrid gathers contiguous square-marker rows from the lines after the
// header. Blank lines are skipped rather than terminating collection; the
// first non-blank line that is not a marker row ends it.
func collectGrid(lines []string) string {
	var rows []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		row, ok := gridRow(trimmed)
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

// gridRow strips variation selectors from a line and reports whether what
// remains is entirely recognized square markers
func gridRow(line string) (string, bool) {
	var row strings.Builder
	seen := false
	for _, r := range line {
		if r == variationSelector {
			continue
		}
		if !gridMarkers[r] {
			return "", false
		}
		row.WriteRune(r)
		seen = true
	}
	if !seen {
		return "", false
	}
	return row.String(), true
}
