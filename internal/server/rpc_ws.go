package server

import (
	"context"
	"net/http"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
)

// wsReadLimit bounds a single inbound JSON-RPC message.
const wsReadLimit = 1 << 20

// wsChannel adapts a coder/websocket.Conn to the jrpc2 Channel interface.
type wsChannel struct {
	conn *cws.Conn
	ctx  context.Context
}

func (c *wsChannel) Send(data []byte) error {
	return c.conn.Write(c.ctx, cws.MessageText, data)
}

func (c *wsChannel) Recv() ([]byte, error) {
	_, data, err := c.conn.Read(c.ctx)
	return data, err
}

func (c *wsChannel) Close() error {
	return c.conn.Close(cws.StatusNormalClosure, "")
}

// handleWS upgrades the request and serves JSON-RPC over the connection
// until the peer goes away. Each connection gets its own jrpc2 server with
// push enabled, registered with the notifier for queue events.
func (rs *RPCServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		rs.log.Warning("rpc: websocket upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(wsReadLimit)

	ctx, cancel := context.WithCancel(rs.ctx)
	defer cancel()
	// Unblocks Recv when the daemon shuts down.
	go func() {
		<-ctx.Done()
		conn.Close(cws.StatusGoingAway, "server shutting down")
	}()

	srv := jrpc2.NewServer(rs.methods, &jrpc2.ServerOptions{AllowPush: true})
	srv.Start(&wsChannel{conn: conn, ctx: ctx})
	rs.notifier.Register(srv)
	defer rs.notifier.Unregister(srv)

	if err := srv.Wait(); err != nil {
		rs.log.Info("rpc: websocket session ended: %v", err)
	}
}
