package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of a dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// CheckFFmpeg checks if ffmpeg is installed and returns its status
func CheckFFmpeg() Status {
	return check("ffmpeg", "-version")
}

// CheckFFprobe checks if ffprobe is installed and returns its status
func CheckFFprobe() Status {
	return check("ffprobe", "-version")
}

// CheckNotifySend checks if notify-send is installed; desktop
// notifications degrade to logging without it.
func CheckNotifySend() Status {
	return check("notify-send", "--version")
}

func check(binary, versionFlag string) Status {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	// version info is on the first output line
	output, err := exec.Command(path, versionFlag).Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}
