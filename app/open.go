package app

import (
	"fmt"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// openExternal opens a card link in the system browser.
func (a *App) openExternal(href string) error {
	target, err := a.client.Resolve(href)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", target)
	default:
		return fmt.Errorf("opening links not supported on %s", runtime.GOOS)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	a.log.Info("opened external link", zap.String("url", target))
	go cmd.Wait()
	return nil
}
