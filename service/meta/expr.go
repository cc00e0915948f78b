package meta

import (
	"os"
	"strings"
	"unicode"
)

// ExpandEnv replaces every ${env.NAME} in text with the value of the
// environment variable NAME; unset variables expand to "".  An expression
// whose name holds anything but letters, digits or '_' is kept literally and
// scanning resumes right after its prefix, so nested expressions still expand.
func ExpandEnv(text string) string {
	const prefix = "${env."
	var out strings.Builder
	for {
		start := strings.Index(text, prefix)
		if start < 0 {
			out.WriteString(text)
			return out.String()
		}
		out.WriteString(text[:start])
		rest := text[start+len(prefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			out.WriteString(text[start:])
			return out.String()
		}
		if name := rest[:end]; isEnvName(name) {
			out.WriteString(os.Getenv(name))
			text = rest[end+1:]
			continue
		}
		out.WriteString(prefix)
		text = rest
	}
}

func isEnvName(name string) bool {
	for _, r := range name {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
