package status

import "testing"

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{"completed", true},
		{"failed", true},
		{"timeout", true},
		{"COMPLETED", true},
		{"Failed", true},
		{"queued", false},
		{"running", false},
		{"unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsTerminal(tt.status); got != tt.expected {
				t.Errorf("IsTerminal(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{"queued", true},
		{"running", true},
		{"RUNNING", true},
		{"completed", false},
		{"failed", false},
		{"timeout", false},
		{"unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsActive(tt.status); got != tt.expected {
				t.Errorf("IsActive(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		fatalErr string
		expected bool
	}{
		{"completed no fatal error", "completed", "", true},
		{"completed with fatal error", "completed", "boom", false},
		{"failed status", "failed", "", false},
		{"timeout status", "timeout", "", false},
		{"running status", "running", "", false},
		{"unknown status", "unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSuccess(tt.status, tt.fatalErr); got != tt.expected {
				t.Errorf("IsSuccess(%q, %q) = %v, want %v", tt.status, tt.fatalErr, got, tt.expected)
			}
		})
	}
}

func TestIsEnvironmentSuccess(t *testing.T) {
	tests := []struct {
		name          string
		envStatus     string
		failedWorkers int
		expected      bool
	}{
		{"completed no failures", "completed", 0, true},
		{"completed with failures", "completed", 1, false},
		{"shutdown", "shutdown", 0, false},
		{"running", "running", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEnvironmentSuccess(tt.envStatus, tt.failedWorkers); got != tt.expected {
				t.Errorf("IsEnvironmentSuccess(%q, %d) = %v, want %v", tt.envStatus, tt.failedWorkers, got, tt.expected)
			}
		})
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"queued", "⏳"},
		{"running", "▶"},
		{"completed", "✓"},
		{"failed", "✗"},
		{"timeout", "⏱"},
		{"unknown", "●"},
		{"", "●"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := Icon(tt.status); got != tt.expected {
				t.Errorf("Icon(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"queued", "dim"},
		{"running", "info"},
		{"completed", "success"},
		{"failed", "error"},
		{"timeout", "warning"},
		{"unknown", "dim"},
		{"", "dim"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := Category(tt.status); got != tt.expected {
				t.Errorf("Category(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}
