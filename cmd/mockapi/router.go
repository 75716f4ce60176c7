package main

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Trimmed captures of the real gael.cloud responses.
const (
	climaFixture = `[{"Estacion":"Quinta Normal, Santiago","Codigo":"330020","Temp":"21.5","Humedad":"45"},
{"Estacion":"Pudahuel Santiago","Codigo":"330021","Temp":"19.8","Humedad":"52"}]`

	sismosFixture = `[{"RefGeografica":"20 km al SO de Illapel","Fecha":"2024-05-01 12:30:00","Magnitud":"4.2","Profundidad":"38"},
{"RefGeografica":"15 km al NO de Valparaiso","Fecha":"2024-05-01 09:10:00","Magnitud":"3.1","Profundidad":"25"}]`

	monedasFixture = `[{"Codigo":"USD","Nombre":"Dolar observado","Valor":"950,25"},
{"Codigo":"UF","Nombre":"Unidad de Fomento","Valor":"37580,12"},
{"Codigo":"JPY","Nombre":"Yen","Valor":"6,1"}]`
)

func newRouter(logger *zap.Logger, user, pass string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), zapLogger(logger))

	pub := r.Group("/general/public")
	pub.GET("/clima", fixture(climaFixture))
	pub.GET("/sismos", fixture(sismosFixture))
	pub.GET("/monedas", fixture(monedasFixture))

	receive := receivePush(logger, user, pass)
	r.POST("/api/v1/push/influx/write", receive)
	r.POST("/metrics/job/:job", receive)

	return r
}

func fixture(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(body))
	}
}

// receivePush checks basic auth, logs what arrived, and accepts.
func receivePush(logger *zap.Logger, user, pass string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, p, ok := c.Request.BasicAuth()
		if !ok || u != user || p != pass {
			c.Header("WWW-Authenticate", `Basic realm="mockapi"`)
			c.String(http.StatusUnauthorized, "bad credentials")
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusBadRequest, "read body: %v", err)
			return
		}

		logger.Info("push received",
			zap.String("path", c.Request.URL.Path),
			zap.String("job", c.Param("job")),
			zap.Int("bytes", len(body)),
		)
		c.Status(http.StatusNoContent)
	}
}

func zapLogger(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		uri := c.Request.RequestURI

		c.Next()

		l.Info("http_request",
			zap.String("method", method),
			zap.String("uri", uri),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
