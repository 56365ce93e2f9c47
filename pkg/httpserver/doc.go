// Package httpserver runs the HTTP endpoint that serves viewkit pages.
//
// A Server wraps http.Server with graceful shutdown. Run blocks until the
// context is cancelled or the listener fails; callers wanting to stop on
// signals pass a context from signal.NotifyContext. Lifecycle events are
// logged through the viewkit logger.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(cfg.Addr),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Ready returns a probe handler running the given checks, such as whether
// the message catalog has any language loaded.
package httpserver
