package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const errorToastDuration = 5 * time.Second

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // true for error toasts (red), false for success (green)
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{
			Message:  message,
			Duration: duration,
		}
	}
}

// ShowError returns a command to show err as an error toast.
func ShowError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return ToastMsg{
			Message:  "Error: " + err.Error(),
			Duration: errorToastDuration,
			IsError:  true,
		}
	}
}
