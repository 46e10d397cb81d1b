// Package deck converts between a markdown deck file and its slides, and
// builds and parses the share links that carry a deck's decryption key.
package deck

import "strings"

// Separator is the line that splits a deck file into slides.
const Separator = "---"

const fence = "```"

// Split cuts text into slides on lines that contain only Separator.
// Separators inside fenced code blocks are ignored. Blank lines around each
// slide are dropped. Text with nothing but whitespace yields no slides.
func Split(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		slides  []string
		current []string
		inFence bool
	)

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fence) {
			inFence = !inFence
		}
		if !inFence && trimmed == Separator {
			slides = append(slides, trimSlide(current))
			current = current[:0]
			continue
		}
		current = append(current, line)
	}

	return append(slides, trimSlide(current))
}

// Join is the inverse of Split for slides that do not begin or end with
// blank lines.
func Join(slides []string) string {
	if len(slides) == 0 {
		return ""
	}
	return strings.Join(slides, "\n\n"+Separator+"\n\n") + "\n"
}

// Title returns the first non-empty line of a slide with leading markdown
// heading marks removed.
func Title(slide string) string {
	for _, line := range strings.Split(slide, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return line
		}
	}
	return ""
}

func trimSlide(lines []string) string {
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
