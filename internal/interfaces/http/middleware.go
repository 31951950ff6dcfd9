package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/encartes-api/pkg/logger"
)

// HTTPRecorder registra peticiones respondidas (pkg/metrics.Manager lo implementa).
type HTTPRecorder interface {
	RecordHTTPRequest(endpoint, method string, status int, elapsed time.Duration)
}

// settle pasa el error de la cadena al ErrorHandler para que el status ya sea el final.
func settle(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	return c.App().ErrorHandler(c, err)
}

// MetricsMiddleware mide cada petición por ruta registrada, método y status.
func MetricsMiddleware(rec HTTPRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := settle(c, c.Next()); err != nil {
			return err
		}
		rec.RecordHTTPRequest(c.Route().Path, c.Method(), c.Response().StatusCode(), time.Since(start))
		return nil
	}
}

// RequestLogger registra método, ruta, status, latencia y request id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := settle(c, c.Next()); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Msg("http")
		return nil
	}
}
