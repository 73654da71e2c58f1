package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global zerolog logger.
// level is one of zerolog's level names ("debug", "info", ...); format "json" disables the console writer.
func InitLogger(level, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var output io.Writer = os.Stdout
	if !strings.EqualFold(format, "json") {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	log.Info().Str("level", lvl.String()).Msg("Logger initialized")
}

// RequestIDHeader carries the request id echoed back by GinLogger.
const RequestIDHeader = "X-Request-ID"

// GinLogger is a middleware for Gin that logs requests using zerolog.
// The request id is taken from RequestIDHeader or generated, and the member id is added when
// the auth middleware has set it under memberKey.
func GinLogger(memberKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = GenerateID()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		statusCode := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case statusCode >= 500:
			event = log.Error()
		case statusCode >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", statusCode).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP())
		if member := c.GetString(memberKey); member != "" {
			event = event.Str("member_id", member)
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("Request processed")
	}
}

func emit(event *zerolog.Event, message string, fields []map[string]interface{}) {
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(message)
}

// LogError logs err with optional structured fields. A nil error is ignored.
func LogError(err error, message string, fields ...map[string]interface{}) {
	if err == nil {
		return
	}
	emit(log.Error().Err(err), message, fields)
}

func LogWarn(message string, fields ...map[string]interface{}) {
	emit(log.Warn(), message, fields)
}

func LogInfo(message string, fields ...map[string]interface{}) {
	emit(log.Info(), message, fields)
}

func LogDebug(message string, fields ...map[string]interface{}) {
	emit(log.Debug(), message, fields)
}
