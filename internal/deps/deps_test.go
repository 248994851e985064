package deps

import "testing"

func TestCheckUnknownBinary(t *testing.T) {
	status := check("definitely-not-a-real-binary-xyz", "--version")
	if status.Installed {
		t.Error("unknown binary reported as installed")
	}
	if status.Path != "" || status.Version != "" {
		t.Errorf("missing binary should have empty fields: %+v", status)
	}
}

func TestCheckFFmpeg(t *testing.T) {
	status := CheckFFmpeg()
	if status.Installed && status.Path == "" {
		t.Error("installed ffmpeg must report its path")
	}
}
