package quickserve

import (
	"fmt"

	"github.com/ghetzel/go-stockutil/fileutil"
	"github.com/ghetzel/go-stockutil/log"
	"github.com/urfave/negroni"
)

// routes negroni's panic reports through our logger
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	log.Errorf("%s", fmt.Sprint(v...))
}

func (recoveryLogger) Printf(format string, v ...interface{}) {
	log.Errorf(format, v...)
}

func (self *Server) setupServer() error {
	fileutil.InitMime()
	self.handler = negroni.New()

	// access log (and request dumper, in verbose mode); outermost so recovered panics still get logged
	self.handler.Use(NewAccessLogger(self.output(), self.Verbose))

	// setup panic recovery handler
	var recovery = negroni.NewRecovery()
	recovery.Logger = recoveryLogger{}
	recovery.PrintStack = false

	self.handler.Use(recovery)

	// the one and only response
	self.handler.UseHandler(self.newHandler())

	return nil
}

func (self *Server) newHandler() *Handler {
	return &Handler{
		Asset:         self.asset,
		Substitutions: self.Substitutions,
		Headers:       self.Headers,
		Redirect:      self.Redirect,
		StatusCode:    self.StatusCode,
	}
}
