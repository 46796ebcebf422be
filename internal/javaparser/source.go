package javaparser

import (
	"strings"
)

// StripComments removes line and block comments outside string and char
// literals. Javadoc blocks are kept when keepJavadoc is set. Removed comments
// are replaced by a single space, or a newline for line comments.
func StripComments(content string, keepJavadoc bool) string {
	var sb strings.Builder
	sb.Grow(len(content))

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '"' || c == '\'':
			end := skipLiteral(content, i)
			sb.WriteString(content[i:end])
			i = end - 1
		case c == '/' && i+1 < len(content) && content[i+1] == '/':
			end := strings.IndexByte(content[i:], '\n')
			if end < 0 {
				return sb.String()
			}
			sb.WriteByte('\n')
			i += end
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				return sb.String()
			}
			end += i + 4
			isJavadoc := i+2 < len(content) && content[i+2] == '*' && end-i > 4
			if keepJavadoc && isJavadoc {
				sb.WriteString(content[i:end])
			} else {
				sb.WriteByte(' ')
			}
			i = end - 1
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// stripJavadoc blanks Javadoc blocks, keeping offsets intact
func stripJavadoc(content string) string {
	b := []byte(content)
	for i := 0; i+2 < len(b); i++ {
		if b[i] == '"' {
			i = skipLiteral(content, i) - 1
			continue
		}
		if b[i] == '/' && b[i+1] == '*' && b[i+2] == '*' {
			end := strings.Index(content[i+3:], "*/")
			stop := len(b)
			if end >= 0 {
				stop = i + 3 + end + 2
			}
			for j := i; j < stop; j++ {
				if b[j] != '\n' {
					b[j] = ' '
				}
			}
			i = stop - 1
		}
	}
	return string(b)
}

// skipLiteral returns the offset after the string or char literal at start.
// Text blocks (""") are handled as well.
func skipLiteral(content string, start int) int {
	quote := content[start]
	if quote == '"' && strings.HasPrefix(content[start:], `"""`) {
		if end := strings.Index(content[start+3:], `"""`); end >= 0 {
			return start + 3 + end + 3
		}
		return len(content)
	}
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(content)
}

// findClosing returns the offset after the bracket closing the one at start,
// skipping literals.
func findClosing(content string, start int, open, close byte) int {
	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '"', '\'':
			if open != '<' {
				i = skipLiteral(content, i) - 1
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(content)
}

// findClosingBrace finds the matching closing brace for an opening brace
// Handles nested braces, strings, chars, and comments
func findClosingBrace(content string, start int) int {
	depth := 1
	inString := false
	inChar := false
	inLineComment := false
	inBlockComment := false
	escaped := false

	for i := start; i < len(content); i++ {
		char := content[i]

		if inLineComment {
			if char == '\n' {
				inLineComment = false
			}
			continue
		}

		if inBlockComment {
			if char == '*' && i+1 < len(content) && content[i+1] == '/' {
				inBlockComment = false
				i++ // Skip /
			}
			continue
		}

		if inString || inChar {
			if escaped {
				escaped = false
				continue
			}
			if char == '\\' {
				escaped = true
				continue
			}
			if inString && char == '"' {
				inString = false
			}
			if inChar && char == '\'' {
				inChar = false
			}
			continue
		}

		// Check for comments start
		if char == '/' && i+1 < len(content) {
			if content[i+1] == '/' {
				inLineComment = true
				i++
				continue
			}
			if content[i+1] == '*' {
				inBlockComment = true
				i++
				continue
			}
		}

		switch char {
		case '"':
			inString = true
			escaped = false
		case '\'':
			inChar = true
			escaped = false
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(content)
}

// cleanJavadoc strips comment markers and block tags, keeping the
// description text.
func cleanJavadoc(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "@") {
			break
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

// Summary returns the first sentence of the Javadoc
func (m *Method) Summary() string {
	doc := m.JavaDoc
	if idx := strings.Index(doc, ". "); idx > 0 {
		return doc[:idx+1]
	}
	return doc
}
