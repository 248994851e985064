package notify

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		kind    string
		want    string
	}{
		{"disabled always nop", false, "desktop", "notify.Nop"},
		{"desktop", true, "desktop", "notify.Desktop"},
		{"log", true, "log", "notify.Log"},
		{"none", true, "none", "notify.Nop"},
		{"unknown kind", true, "carrier-pigeon", "notify.Nop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.enabled, tt.kind)
			switch n.(type) {
			case Nop:
				if tt.want != "notify.Nop" {
					t.Errorf("got Nop, want %s", tt.want)
				}
			case Desktop:
				if tt.want != "notify.Desktop" {
					t.Errorf("got Desktop, want %s", tt.want)
				}
			case Log:
				if tt.want != "notify.Log" {
					t.Errorf("got Log, want %s", tt.want)
				}
			default:
				t.Errorf("unexpected notifier type %T", n)
			}
		})
	}
}

func TestNopDoesNothing(t *testing.T) {
	// must be safe without a display server
	n := Nop{}
	n.JobStarted("/inbox/a.wav")
	n.JobCompleted("/inbox/a.wav", "en")
	n.JobFailed("/inbox/a.wav", nil)
}
