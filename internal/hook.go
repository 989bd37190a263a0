package daycounter

import (
	"github.com/charmbracelet/log"
)

// Hook is called with the fresh view after every state change
type Hook func(View)

// counterMessage is pushed to websocket clients after every change
type counterMessage struct {
	Event string `json:"event"`
	View
}

// BroadcastHook creates a hook that pushes every new view to the connected clients
func BroadcastHook(clients *Clients) Hook {
	return func(v View) {
		if clients.Len() == 0 {
			return
		}
		log.Debug("Broadcasting counter", "days", v.DaysCount, "picker", v.PickerVisible)
		clients.Broadcast(counterMessage{Event: "counter", View: v})
	}
}
