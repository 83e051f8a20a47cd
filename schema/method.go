package schema

const (
	MethodPing            = "ping"
	MethodBridgeCreate    = "bridge/create"
	MethodBridgeRemove    = "bridge/remove"
	MethodSenderListen    = "sender/listen"
	MethodReceiverReceive = "receiver/receive"

	MethodNotificationCancel  = "notifications/cancelled"
	MethodNotificationMessage = "notifications/message"
)

// Methods lists every request method a backend must implement.
var Methods = []string{
	MethodPing,
	MethodBridgeCreate,
	MethodBridgeRemove,
	MethodSenderListen,
	MethodReceiverReceive,
}
