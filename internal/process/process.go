// Package process runs external converter commands in their own process
// group so a timeout or cancellation reaps the whole tree.
package process

import (
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long Wait blocks on I/O after the process
// has been killed.
const DefaultWaitDelay = 2 * time.Second

// Isolate prepares cmd, which must come from exec.CommandContext, to start
// in a new process group. When the context is done the whole group is
// killed, including any helpers the converter spawned.
func Isolate(cmd *exec.Cmd) {
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = DefaultWaitDelay
}
