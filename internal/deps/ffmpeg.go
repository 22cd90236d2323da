package deps

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// availabilityTTL bounds how long a LookPath result is trusted. Checking per
// job (rather than once at process start) lets environment changes and test
// doubles take effect without restarting the host process, while the short
// cache keeps repeated jobs from hammering the filesystem.
const availabilityTTL = 30 * time.Second

type cachedLookup struct {
	path    string
	err     error
	checked time.Time
}

// Checker resolves encoder and probe binaries with a short-lived cache.
type Checker struct {
	mu    sync.Mutex
	cache map[string]cachedLookup
	now   func() time.Time
}

// NewChecker constructs a Checker using the wall clock.
func NewChecker() *Checker {
	return &Checker{cache: make(map[string]cachedLookup), now: time.Now}
}

// Resolve returns the absolute path for a binary name, or an error when the
// binary cannot be located on the host.
func (c *Checker) Resolve(binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", fmt.Errorf("binary name required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[binary]; ok && c.now().Sub(entry.checked) < availabilityTTL {
		return entry.path, entry.err
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		err = fmt.Errorf("binary %q not found: %w", binary, err)
	}
	c.cache[binary] = cachedLookup{path: path, err: err, checked: c.now()}
	return path, err
}

// Invalidate drops any cached result for the binary, forcing the next Resolve
// to consult the filesystem.
func (c *Checker) Invalidate(binary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, strings.TrimSpace(binary))
}
