package core

import (
	"os"
	"os/user"
	"strings"

	"github.com/fatih/color"
)

var (
	promptUserColor = color.New(color.FgGreen, color.Bold)
	promptDirColor  = color.New(color.FgBlue, color.Bold)
)

// Prompt renders "user@host: dir $ " with the home directory shown as ~.
func (s *Shell) Prompt() string {
	username := os.Getenv("USER")
	if username == "" {
		if u, err := user.Current(); err == nil {
			username = u.Username
		}
	}

	host, _ := os.Hostname()

	pwd, _ := os.Getwd()
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}

	userHost := username + "@" + host
	if s.Color {
		userHost = promptUserColor.Sprint(userHost)
		pwd = promptDirColor.Sprint(pwd)
	}

	return userHost + ": " + pwd + " $ "
}
