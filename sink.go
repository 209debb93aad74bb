package xexpr

import (
	"log"
	"os"
	"sync"
)

// ErrorHandler receives diagnostics for invalid sources. msg has the form
// "Syntax error at <pos>: <detail>". ctx is the value installed alongside the
// handler.
type ErrorHandler func(msg string, ctx interface{})

// Discard is an ErrorHandler that ignores all diagnostics.
func Discard(msg string, ctx interface{}) {}

// diaglog is the destination of the default handler.
var diaglog = log.New(os.Stderr, "", 0)

func logHandler(msg string, ctx interface{}) {
	diaglog.Print(msg)
}

var global = struct {
	sync.RWMutex
	h   ErrorHandler
	ctx interface{}
}{h: logHandler}

// SetErrorHandler installs the process-wide handler used by compiles that do
// not pass HandleErrors. A nil h restores the default, which logs to stderr.
func SetErrorHandler(h ErrorHandler, ctx interface{}) {
	if h == nil {
		h, ctx = logHandler, nil
	}
	global.Lock()
	global.h, global.ctx = h, ctx
	global.Unlock()
}

func globalHandler() (ErrorHandler, interface{}) {
	global.RLock()
	defer global.RUnlock()
	return global.h, global.ctx
}

// diagnostic formats the message passed to error handlers.
func diagnostic(err InputError) string {
	return "Syntax error at " + errpos(err.Pos(), err.Detail())
}
