package bot

import (
	"regexp"
	"sync"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
)

// CompileCI compiles pattern with case-insensitive matching enabled. The
// pattern can opt out locally with the (?-i) flag.
func CompileCI(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid pattern").
			WithCode(mdwerror.CodeInvalidPattern).
			WithDetail("pattern", pattern)
	}
	return re, nil
}

// RegexCell holds a trigger's compiled pattern together with the source
// text it was given. Dispatch reads it concurrently; an administrator may
// swap the pattern while the trigger stays registered.
type RegexCell struct {
	mu     sync.RWMutex
	source string
	re     *regexp.Regexp
}

// NewRegexCell compiles pattern case-insensitively into a new cell.
func NewRegexCell(pattern string) (*RegexCell, error) {
	re, err := CompileCI(pattern)
	if err != nil {
		return nil, err
	}
	return &RegexCell{source: pattern, re: re}, nil
}

// Load returns the current compiled pattern.
func (c *RegexCell) Load() *regexp.Regexp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.re
}

// Pattern returns the current pattern as it was given, without the
// case-insensitivity flag added at compile time.
func (c *RegexCell) Pattern() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// Replace compiles pattern and swaps it in. On a compile error the cell is
// left unchanged.
func (c *RegexCell) Replace(pattern string) error {
	re, err := CompileCI(pattern)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.source = pattern
	c.re = re
	c.mu.Unlock()
	return nil
}

// MatchString reports whether the current pattern matches s.
func (c *RegexCell) MatchString(s string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.re.MatchString(s)
}

// FindStringSubmatch runs the current pattern against s and returns the
// whole match followed by the capture groups, or nil if nothing matched.
func (c *RegexCell) FindStringSubmatch(s string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.re.FindStringSubmatch(s)
}

// String returns the pattern as it was given.
func (c *RegexCell) String() string {
	return c.Pattern()
}
