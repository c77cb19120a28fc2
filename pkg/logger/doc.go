// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute
// constructors, and transparent injection of values stored in
// context.Context.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static attributes
// applied to every record, and ContextExtractor callbacks that pull
// attributes from a context value (for example a dispatch or request id)
// every time a record is handled.
//
// Helper constructors such as Error, NotifierName, and NotificationID live
// in attr.go and keep attribute naming consistent across the delivery
// subsystem.
//
//	log := logger.New(
//	    logger.WithProduction("alert-dispatch"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	log.InfoContext(ctx, "notification dispatched",
//	    logger.NotificationID(n.ID),
//	    logger.Duration(time.Since(start)),
//	)
package logger
