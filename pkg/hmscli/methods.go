package hmscli

import (
	"context"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
)

func call[T any](ctx context.Context, c *Client, method string, params any) (*T, error) {
	var out T
	if err := c.rpc.CallResult(ctx, method, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Version(ctx context.Context) (*common.VersionResult, error) {
	return call[common.VersionResult](ctx, c, common.MethodGetVersion, nil)
}

// Admit books a patient. Validation failures satisfy IsInvalidParams and a
// patient already waiting for the department satisfies IsDuplicate.
func (c *Client) Admit(ctx context.Context, name string, severity int, department string) (*common.EntryInfo, error) {
	return call[common.EntryInfo](ctx, c, common.MethodAdmit, &common.AdmitParams{
		Name:       name,
		Severity:   severity,
		Department: department,
	})
}

// ServeNext serves the most urgent patient. An empty queue is reported in
// the result, not as an error.
func (c *Client) ServeNext(ctx context.Context) (*common.ServeResult, error) {
	return call[common.ServeResult](ctx, c, common.MethodServeNext, nil)
}

func (c *Client) Waiting(ctx context.Context) (*common.WaitingResult, error) {
	return call[common.WaitingResult](ctx, c, common.MethodWaiting, nil)
}

func (c *Client) Served(ctx context.Context) (*common.ServedResult, error) {
	return call[common.ServedResult](ctx, c, common.MethodServed, nil)
}

// Reset empties the queue and the served log; with analytics set the
// severity histogram is cleared too.
func (c *Client) Reset(ctx context.Context, analytics bool) error {
	_, err := call[common.EmptyResult](ctx, c, common.MethodReset, &common.ResetParams{Analytics: analytics})
	return err
}

func (c *Client) Severity(ctx context.Context) (*common.SeverityResult, error) {
	return call[common.SeverityResult](ctx, c, common.MethodAnalyticsSeverity, nil)
}
