package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Opener launches the user's editor on the config file.
type Opener struct{}

func NewOpener() *Opener {
	return &Opener{}
}

// OpenFile opens path in the editor and waits for it to exit.
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening path in the editor, wired to the
// terminal. Useful with bubbletea's ExecProcess.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	ed := findEditor()
	if ed == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR")
	}
	cmd := exec.Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func findEditor() string {
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	for _, candidate := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return ""
}
