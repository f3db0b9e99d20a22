// Package shared provides small utility functions used across rover
// modules, adapted from the original server's safe-resource-cleanup
// helpers.
package shared

import (
	"reflect"
	"sync"
)

// channelCloseMutex protects against concurrent channel close operations.
var channelCloseMutex sync.Mutex

// SafeClose closes closer without panicking: objects with a Close() error
// method are closed normally; channels are closed via SafeCloseChannel;
// nil is ignored.
func SafeClose(closer interface{}) {
	if closer == nil {
		return
	}

	if c, ok := closer.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			DebugPrint("Error closing resource: %v", err)
		}
		return
	}

	SafeCloseChannel(closer)
}

// SafeCloseChannel closes ch without panicking if it is already closed or
// not a channel at all.
func SafeCloseChannel(ch interface{}) {
	if ch == nil {
		return
	}

	val := reflect.ValueOf(ch)
	if val.Kind() != reflect.Chan {
		DebugPrint("SafeCloseChannel: not a channel, type: %T", ch)
		return
	}

	channelCloseMutex.Lock()
	defer channelCloseMutex.Unlock()

	// Closing an already-closed channel panics; recover from that rather
	// than probing with isChannelClosed, which would take a buffered value.
	defer func() { _ = recover() }()
	val.Close()
}

// isChannelClosed reports whether ch is closed. On an open channel that
// holds a buffered value it receives that value, which is then lost to
// the channel's other receivers.
func isChannelClosed(ch reflect.Value) bool {
	if ch.Kind() != reflect.Chan {
		return true
	}

	chosen, _, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: ch},
		{Dir: reflect.SelectDefault},
	})

	return chosen == 0 && !ok
}
