package core

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/daybook-sh/daybook/pkg/models"
)

var (
	openMarkerRe   = regexp.MustCompile(`<span class="mdc-input" data-meta='([^']*)'></span>`)
	endMarkerRe    = regexp.MustCompile(`<span class="mdc-input-end" data-meta='[^']*'></span>`)
	hiddenValueRe  = regexp.MustCompile(`<span class="mdc-hidden-value" data-value="([^"]*)"></span>`)
	checkedBoxRe   = regexp.MustCompile(`(?m)^\s*- \[[xX]\]`)
	checkboxLineRe = regexp.MustCompile(`(?m)^\s*- \[([ xX])\] (.*)$`)
	numberLineRe   = regexp.MustCompile(`(?m)^>\s*[^:]*:\s*(-?\d+(?:\.\d+)?)\s*$`)
	quoteLineRe    = regexp.MustCompile(`(?m)^>\s?(.*)$`)
)

// ExtractAnswers scans a rendered report for input regions and converts each
// region's user edits back into a typed Answer. Untouched inputs produce
// answers with a nil Value. Constraint violations, like multiple selections
// on a single-choice input, are recorded on the answer rather than aborting
// the whole extraction.
func ExtractAnswers(content string) ([]models.Answer, error) {
	var answers []models.Answer

	opens := openMarkerRe.FindAllStringSubmatchIndex(content, -1)
	for _, loc := range opens {
		var meta InputMeta
		rawMeta := content[loc[2]:loc[3]]
		if err := json.Unmarshal([]byte(rawMeta), &meta); err != nil {
			return nil, fmt.Errorf("parsing input marker metadata: %w", err)
		}

		rest := content[loc[1]:]
		end := endMarkerRe.FindStringIndex(rest)
		if end == nil {
			return nil, fmt.Errorf("input region for item %s has no end marker", meta.ItemID)
		}
		region := rest[:end[0]]

		ans := models.Answer{
			ComponentID: meta.ComponentID,
			ItemID:      meta.ItemID,
			Type:        meta.Type,
			Label:       meta.Label,
		}
		ans.Value, ans.Errors = extractValue(meta, region)
		answers = append(answers, ans)
	}

	return answers, nil
}

func extractValue(meta InputMeta, region string) (any, []string) {
	switch meta.Type {
	case models.InputBoolean:
		if checkedBoxRe.MatchString(region) {
			return true, nil
		}
		if checkboxLineRe.MatchString(region) {
			return false, nil
		}
		return nil, nil

	case models.InputNumber:
		m := numberLineRe.FindStringSubmatch(region)
		if m == nil {
			return nil, nil
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, []string{fmt.Sprintf("unparseable number %q", m[1])}
		}
		return n, nil

	case models.InputMultiCheckbox:
		return extractChoices(meta, region)

	case models.InputRichText:
		var lines []string
		for _, line := range strings.Split(stripMarkers(region), "\n") {
			if isPlaceholderLine(line) {
				continue
			}
			lines = append(lines, line)
		}
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text == "" {
			return nil, nil
		}
		return text, nil

	default: // text
		var lines []string
		for _, m := range quoteLineRe.FindAllStringSubmatch(region, -1) {
			if isPlaceholderLine(m[1]) {
				continue
			}
			lines = append(lines, m[1])
		}
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text == "" {
			return nil, nil
		}
		return text, nil
	}
}

// isPlaceholderLine reports whether a line is a rendered placeholder hint:
// fully italic, exactly as the renderer emits it.
func isPlaceholderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) > 2 && strings.HasPrefix(trimmed, "*") && strings.HasSuffix(trimmed, "*")
}

// extractChoices pairs each checked option line with its hidden value span.
func extractChoices(meta InputMeta, region string) (any, []string) {
	var selected []string
	for _, m := range checkboxLineRe.FindAllStringSubmatch(region, -1) {
		if m[1] == " " {
			continue
		}
		hv := hiddenValueRe.FindStringSubmatch(m[2])
		if hv != nil {
			selected = append(selected, hv[1])
		} else {
			selected = append(selected, strings.TrimSpace(m[2]))
		}
	}

	if len(selected) == 0 {
		return nil, nil
	}
	if meta.SingleChoice {
		if len(selected) > 1 {
			return selected[0], []string{fmt.Sprintf("%d options selected on a single-choice input", len(selected))}
		}
		return selected[0], nil
	}
	return selected, nil
}

func stripMarkers(s string) string {
	s = hiddenValueRe.ReplaceAllString(s, "")
	return s
}
