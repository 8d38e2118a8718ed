package filetimes

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SetFile ships with the Xcode command line tools; without it creation
// time stays as the extraction left it.
func hostBirthSetter() birthSetter {
	setfile, err := exec.LookPath("SetFile")
	if err != nil {
		return nil
	}
	return func(path string, t time.Time) error {
		stamp := t.Local().Format("01/02/2006 15:04:05")
		out, err := exec.Command(setfile, "-d", stamp, path).CombinedOutput()
		if err != nil {
			return fmt.Errorf("SetFile: %v: %s", err, strings.TrimSpace(string(out)))
		}
		return nil
	}
}
