package render

import "strings"

// Line is one laid-out text line with its measured pixel box.
type Line struct {
	Text   string
	Width  int
	Height int
}

// WrappedText is the ordered line sequence produced by WrapText.
type WrappedText []Line

// WrapText breaks text into lines no wider than maxWidth pixels, measured
// with the handle's face. Explicit "\n" breaks always start a new line. A
// single word wider than maxWidth stays alone on its own line, unbroken.
// Line-count caps are the composers' business: the meme keeps two lines,
// the quote card eight, the rest is dropped there.
func WrapText(text string, h FontHandle, maxWidth int) WrappedText {
	var lines WrappedText
	height := h.LineHeight()

	for _, segment := range strings.Split(text, "\n") {
		words := strings.Fields(segment)
		if len(words) == 0 {
			// Явный перенос без слов остаётся пустой строкой
			lines = append(lines, Line{Text: "", Width: 0, Height: height})
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if h.TextWidth(candidate) > maxWidth {
				lines = append(lines, Line{Text: current, Width: h.TextWidth(current), Height: height})
				current = word
			} else {
				current = candidate
			}
		}
		lines = append(lines, Line{Text: current, Width: h.TextWidth(current), Height: height})
	}

	return lines
}
