package di

import (
	"sage/internal/events"
	"sage/internal/sweep"
	"sage/transport/http"
)

// App bundles the long-running parts of the service: the HTTP transport, the
// reconciliation sweeper, and the intent dispatcher. Each runs in its own
// goroutine from main.
type App struct {
	HTTP       *http.HTTP
	Sweeper    *sweep.Sweeper
	Dispatcher *events.Dispatcher
}

func newApp(h *http.HTTP, sweeper *sweep.Sweeper, dispatcher *events.Dispatcher) *App {
	return &App{
		HTTP:       h,
		Sweeper:    sweeper,
		Dispatcher: dispatcher,
	}
}
