package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"framepacer/internal/sched"
)

// Controller runs the live UI and implements sched.FrameObserver.
type Controller struct {
	reports   chan sched.FrameReport
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	reports := make(chan sched.FrameReport, 256)
	model := NewModel(reports)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		reports: reports,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// OnFrameEnd forwards the frame report to the UI without blocking the frame
// thread; reports are dropped when the UI falls behind.
func (c *Controller) OnFrameEnd(report sched.FrameReport) {
	if c == nil {
		return
	}
	select {
	case c.reports <- report:
	default:
	}
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.reports)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}
