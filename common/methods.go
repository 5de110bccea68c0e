package common

// JSON-RPC methods served by the daemon.
const (
	MethodGetVersion        = "system.getVersion"
	MethodAdmit             = "patient.admit"
	MethodServeNext         = "patient.serveNext"
	MethodWaiting           = "queue.waiting"
	MethodServed            = "queue.served"
	MethodReset             = "queue.reset"
	MethodAnalyticsSeverity = "analytics.severity"
)

// Notifications pushed to websocket subscribers.
const (
	NotifyAdmitted = "queue.admitted"
	NotifyServed   = "queue.served"
	NotifyReset    = "queue.reset"
)

// RPC paths on the daemon's HTTP listener.
const (
	RPCPath   = "/jsonrpc"
	RPCWSPath = "/jsonrpc/ws"
)

// JSON-RPC error codes used by the daemon beyond the standard set.
const (
	CodeInvalidParams = -32602
	CodeDuplicate     = -32010
)
