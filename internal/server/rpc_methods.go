package server

import (
	"context"
	"errors"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/booking"
	"github.com/thedakshnailwal/Hospital-Management-System/internal/scheduler"
	"github.com/thedakshnailwal/Hospital-Management-System/pkg/logger"
)

// RPCConfig holds configuration for the JSON-RPC endpoints.
type RPCConfig struct {
	Secret    string // Auth token; empty rejects every request
	Version   string
	Commit    string
	BuildType string
}

// Histogram is the read side of the analytics tracker.
type Histogram interface {
	Severity() map[int]int
	Departments() map[string]int
	Range() (lo, hi int)
}

// RPCServer exposes the admission desk over JSON-RPC 2.0, both as an HTTP
// bridge and per websocket connection.
type RPCServer struct {
	methods  handler.Map
	bridge   jhttp.Bridge
	secret   string
	version  common.VersionResult
	desk     *booking.Desk
	stats    Histogram
	notifier *RPCNotifier
	log      logger.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewRPCServer creates the method table and HTTP bridge. stats may be nil,
// in which case analytics.severity reports empty maps.
func NewRPCServer(cfg *RPCConfig, desk *booking.Desk, stats Histogram, n *RPCNotifier, l logger.Logger) *RPCServer {
	if l == nil {
		l = logger.NewNopLogger()
	}
	if n == nil {
		n = NewRPCNotifier(l)
	}
	rs := &RPCServer{
		secret: cfg.Secret,
		version: common.VersionResult{
			Version:   cfg.Version,
			Commit:    cfg.Commit,
			BuildType: cfg.BuildType,
		},
		desk:     desk,
		stats:    stats,
		notifier: n,
		log:      l,
	}
	rs.ctx, rs.cancel = context.WithCancel(context.Background())

	rs.methods = handler.Map{
		common.MethodGetVersion:        handler.New(rs.systemGetVersion),
		common.MethodAdmit:             handler.New(rs.patientAdmit),
		common.MethodServeNext:         handler.New(rs.patientServeNext),
		common.MethodWaiting:           handler.New(rs.queueWaiting),
		common.MethodServed:            handler.New(rs.queueServed),
		common.MethodReset:             handler.New(rs.queueReset),
		common.MethodAnalyticsSeverity: handler.New(rs.analyticsSeverity),
	}
	rs.bridge = jhttp.NewBridge(rs.methods, nil)
	return rs
}

// Close ends open websocket sessions and the HTTP bridge.
func (rs *RPCServer) Close() {
	rs.closeOnce.Do(func() {
		rs.cancel()
		rs.bridge.Close()
	})
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*common.VersionResult, error) {
	v := rs.version
	return &v, nil
}

func (rs *RPCServer) patientAdmit(_ context.Context, p *common.AdmitParams) (*common.EntryInfo, error) {
	if p == nil {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "missing params"}
	}
	e, err := rs.desk.Admit(p.Name, p.Severity, p.Department)
	switch {
	case booking.IsInputError(err):
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
	case errors.Is(err, booking.ErrDuplicate):
		return nil, &jrpc2.Error{Code: codeDuplicate, Message: err.Error()}
	case err != nil:
		return nil, err
	}
	info := entryInfo(e)
	rs.notifier.Broadcast(common.NotifyAdmitted, info)
	return info, nil
}

func (rs *RPCServer) patientServeNext(_ context.Context) (*common.ServeResult, error) {
	res := rs.desk.ServeNext()
	if res.Empty {
		return &common.ServeResult{Empty: true}, nil
	}
	info := servedInfo(res.Record)
	rs.notifier.Broadcast(common.NotifyServed, info)
	return &common.ServeResult{Served: info}, nil
}

func (rs *RPCServer) queueWaiting(_ context.Context) (*common.WaitingResult, error) {
	s := rs.desk.Scheduler()
	waiting := s.ListWaiting()
	out := &common.WaitingResult{
		Date:    s.Day().String(),
		Entries: make([]*common.EntryInfo, len(waiting)),
	}
	for i, e := range waiting {
		out.Entries[i] = entryInfo(e)
	}
	return out, nil
}

func (rs *RPCServer) queueServed(_ context.Context) (*common.ServedResult, error) {
	s := rs.desk.Scheduler()
	served := s.ListServed()
	out := &common.ServedResult{
		Date:    s.Day().String(),
		Records: make([]*common.ServedInfo, len(served)),
	}
	for i, r := range served {
		out.Records[i] = servedInfo(r)
	}
	return out, nil
}

// queueReset empties the queue. With Analytics set the histogram is cleared
// as well, matching the front desk's "clear history" action.
func (rs *RPCServer) queueReset(_ context.Context, p *common.ResetParams) (*common.EmptyResult, error) {
	if p != nil && p.Analytics {
		rs.desk.ClearHistory()
	} else {
		rs.desk.ResetQueue()
	}
	rs.NotifyReset(common.ResetManual)
	return &common.EmptyResult{}, nil
}

func (rs *RPCServer) analyticsSeverity(_ context.Context) (*common.SeverityResult, error) {
	if rs.stats == nil {
		return &common.SeverityResult{Counts: map[int]int{}, Departments: map[string]int{}}, nil
	}
	lo, hi := rs.stats.Range()
	return &common.SeverityResult{
		Counts:      rs.stats.Severity(),
		Departments: rs.stats.Departments(),
		Min:         lo,
		Max:         hi,
	}, nil
}

// NotifyReset tells subscribers the queue was emptied.
func (rs *RPCServer) NotifyReset(reason string) {
	rs.notifier.Broadcast(common.NotifyReset, &common.ResetNotification{
		Date:   rs.desk.Scheduler().Day().String(),
		Reason: reason,
	})
}

func entryInfo(e scheduler.WaitingEntry) *common.EntryInfo {
	return &common.EntryInfo{
		Severity:   e.Severity,
		Sequence:   e.Sequence,
		Name:       e.Name,
		Department: e.Department,
	}
}

func servedInfo(r scheduler.ServedRecord) *common.ServedInfo {
	return &common.ServedInfo{
		Name:       r.Name,
		Severity:   r.Severity,
		Department: r.Department,
		ServedAt:   r.ServedAt,
	}
}
