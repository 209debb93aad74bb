package xexpr

// CompileOption is an option for compiling.
type CompileOption interface {
	compileOption(compilectx) compilectx
}

// compilectx holds the configuration of one compile.
type compilectx struct {
	// handler receives diagnostics. If it is nil, the process-wide handler
	// installed with SetErrorHandler is used.
	handler ErrorHandler
	ctx     interface{}
}

type handleropt struct {
	h   ErrorHandler
	ctx interface{}
}

// HandleErrors sets the handler that receives the diagnostic if the compile
// fails, overriding the handler installed with SetErrorHandler. ctx is passed
// to h. A nil h discards the diagnostic.
func HandleErrors(h ErrorHandler, ctx interface{}) CompileOption {
	if h == nil {
		h = Discard
	}
	return &handleropt{h, ctx}
}

func (o *handleropt) compileOption(c compilectx) compilectx {
	c.handler = o.h
	c.ctx = o.ctx
	return c
}

// report sends the diagnostic for err to the configured handler.
func (c *compilectx) report(err InputError) {
	h, ctx := c.handler, c.ctx
	if h == nil {
		h, ctx = globalHandler()
	}
	h(diagnostic(err), ctx)
}
