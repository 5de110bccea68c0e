package server

import (
	"github.com/creachadair/jrpc2"

	"github.com/thedakshnailwal/Hospital-Management-System/common"
)

const (
	codeInvalidRequest = -32600
	codeInvalidParams  = jrpc2.Code(common.CodeInvalidParams)
	codeDuplicate      = jrpc2.Code(common.CodeDuplicate)
)
