package azure

import (
	"fmt"
	"io"

	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
)

// EnableDebugLogging forwards SDK request, response, and poller events to w.
func EnableDebugLogging(w io.Writer) {
	azlog.SetEvents(azlog.EventRequest, azlog.EventResponse, azlog.EventLRO)
	azlog.SetListener(func(cls azlog.Event, msg string) {
		fmt.Fprintf(w, "[%s] %s\n", cls, msg)
	})
}

// DisableDebugLogging removes the listener installed by EnableDebugLogging.
func DisableDebugLogging() {
	azlog.SetListener(nil)
}
