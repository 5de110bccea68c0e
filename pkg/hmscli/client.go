// Package hmscli is the Go client of the hms daemon. It speaks JSON-RPC 2.0
// over the daemon's websocket endpoint and delivers queue notifications to
// registered callbacks.
package hmscli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
)

// ErrUnauthorized is returned by Dial when the daemon rejects the token.
var ErrUnauthorized = errors.New("daemon rejected the rpc token")

type Client struct {
	rpc    *jrpc2.Client
	conn   *cws.Conn
	cancel context.CancelFunc

	mu       sync.RWMutex
	handlers map[string][]func(*jrpc2.Request)
}

// Dial connects to the daemon at baseURL (http://, https://, ws:// or
// wss://) and authenticates with secret.
func Dial(ctx context.Context, baseURL, secret string) (*Client, error) {
	url := wsURL(baseURL)
	conn, resp, err := cws.Dial(ctx, url, &cws.DialOptions{
		HTTPHeader: http.Header{
			"Authorization": []string{"Bearer " + secret},
		},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("error connecting to daemon at %s: %w", url, err)
	}

	// The session outlives the dial context.
	sctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:     conn,
		cancel:   cancel,
		handlers: make(map[string][]func(*jrpc2.Request)),
	}
	c.rpc = jrpc2.NewClient(&wsChannel{conn: conn, ctx: sctx}, &jrpc2.ClientOptions{
		OnNotify: c.dispatch,
	})
	return c, nil
}

func wsURL(base string) string {
	base = strings.TrimSuffix(base, "/")
	switch {
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case !strings.HasPrefix(base, "ws://") && !strings.HasPrefix(base, "wss://"):
		base = "ws://" + base
	}
	return base + common.RPCWSPath
}

// Close ends the session.
func (c *Client) Close() error {
	err := c.rpc.Close()
	c.cancel()
	return err
}

func (c *Client) dispatch(req *jrpc2.Request) {
	c.mu.RLock()
	hs := c.handlers[req.Method()]
	c.mu.RUnlock()
	for _, h := range hs {
		h(req)
	}
}

func (c *Client) on(method string, h func(*jrpc2.Request)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[method] = append(c.handlers[method], h)
}

// notify registers a typed callback for a notification method. Payloads that
// fail to decode are dropped.
func notify[T any](c *Client, method string, fn func(*T)) {
	c.on(method, func(req *jrpc2.Request) {
		var v T
		if err := req.UnmarshalParams(&v); err != nil {
			return
		}
		fn(&v)
	})
}

// OnAdmitted is called for every patient admitted by any client.
func (c *Client) OnAdmitted(fn func(*common.EntryInfo)) { notify(c, common.NotifyAdmitted, fn) }

// OnServed is called for every patient served by any client.
func (c *Client) OnServed(fn func(*common.ServedInfo)) { notify(c, common.NotifyServed, fn) }

// OnReset is called when the queue is emptied manually or by the daily rollover.
func (c *Client) OnReset(fn func(*common.ResetNotification)) { notify(c, common.NotifyReset, fn) }

// IsDuplicate reports whether err is the daemon refusing a duplicate booking.
func IsDuplicate(err error) bool { return hasCode(err, common.CodeDuplicate) }

// IsInvalidParams reports whether err is the daemon rejecting the request input.
func IsInvalidParams(err error) bool { return hasCode(err, common.CodeInvalidParams) }

func hasCode(err error, code int) bool {
	var rerr *jrpc2.Error
	return errors.As(err, &rerr) && rerr.Code == jrpc2.Code(code)
}
