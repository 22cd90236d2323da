package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Status reports the availability of one external binary. Clipforge needs
// exactly two, ffmpeg and ffprobe, so there is no requirement registry; the
// preflight layer names them directly.
type Status struct {
	Name      string
	Command   string
	Available bool
	Detail    string
}

// CheckBinary reports whether the named binary can be invoked. Command may be
// a bare name resolved on PATH or an absolute path from configuration.
func CheckBinary(name, command string) Status {
	command = strings.TrimSpace(command)
	if command == "" {
		return Status{Name: name, Detail: "command not configured"}
	}
	if _, err := exec.LookPath(command); err != nil {
		return Status{
			Name:    name,
			Command: command,
			Detail:  fmt.Sprintf("binary %q not found", command),
		}
	}
	return Status{Name: name, Command: command, Available: true}
}
