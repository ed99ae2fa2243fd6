package supervisor

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// maxStderrBufferSize caps the retained stderr. Lines past the cap still
// reach the callback.
const maxStderrBufferSize = 64 * 1024

// stderrCollector buffers daemon stderr for error reports.
type stderrCollector struct {
	mu       sync.Mutex
	buf      strings.Builder
	callback func(string)
}

// drain reads r line by line until EOF.
func (c *stderrCollector) drain(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		c.mu.Lock()

		if c.buf.Len() < maxStderrBufferSize {
			if c.buf.Len() > 0 {
				c.buf.WriteString("\n")
			}

			c.buf.WriteString(line)
		}

		c.mu.Unlock()

		if c.callback != nil {
			c.callback(line)
		}
	}
}

func (c *stderrCollector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return strings.TrimSpace(c.buf.String())
}
