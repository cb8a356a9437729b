package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// CheckShelvePattern validates a secondary-metabolite pattern. The browser
// compiles it as a JavaScript RegExp, so only syntax that RE2 and JavaScript
// read the same way is accepted:
//
//   - no inline flags such as (?i) or (?s:...)
//   - no (?P<name>...) groups; (?<name>...) is fine
//   - no \A, \z, \Q...\E, \C, \p or \P escapes
//   - no [[:alpha:]] classes and no ']' first in a class
//   - no lookaround, which RE2 cannot compile
func CheckShelvePattern(p string) error {
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\':
			if i+1 < len(p) {
				switch p[i+1] {
				case 'A', 'z', 'Q', 'E', 'C', 'p', 'P':
					return fmt.Errorf(`\%c is not supported by the browser`, p[i+1])
				}
				i++
			}

		case inClass:
			switch {
			case c == ']':
				inClass = false
			case c == '[' && i+1 < len(p) && p[i+1] == ':':
				return errors.New("[:name:] classes are not supported by the browser")
			}

		case c == '[':
			inClass = true
			j := i + 1
			if j < len(p) && p[j] == '^' {
				j++
			}
			if j < len(p) && p[j] == ']' {
				return errors.New("']' first in a class is read differently by the browser; escape it")
			}

		case c == '(' && strings.HasPrefix(p[i:], "(?"):
			rest := p[i+2:]
			switch {
			case strings.HasPrefix(rest, "="), strings.HasPrefix(rest, "!"),
				strings.HasPrefix(rest, "<="), strings.HasPrefix(rest, "<!"):
				return errors.New("lookaround is not supported")
			case strings.HasPrefix(rest, ":"), strings.HasPrefix(rest, "<"):
			case strings.HasPrefix(rest, "P<"):
				return errors.New("(?P<name>) is not supported by the browser; use (?<name>)")
			default:
				return errors.New("inline flags are not supported by the browser")
			}
		}
	}

	_, err := regexp.Compile(p)
	return err
}
