package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/:id<int>/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", Handler(reg))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/4/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestCounter))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))

	m.VotesCast.Inc()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "polls_votes_total 1")
	assert.Contains(t, string(body), "polls_http_requests_total")
}

func TestMiddlewareLabelsUnmatchedAndFailedRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Use(recover.New())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("index") })
	app.Get("/boom/", func(c *fiber.Ctx) error { panic("boom") })
	app.Get("/broken/", func(c *fiber.Ctx) error { return errors.New("storage down") })

	for _, path := range []string{"/", "/nowhere/", "/boom/", "/broken/"} {
		_, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", UnmatchedRoute, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/boom/", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/broken/", "500")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.RequestCounter))
}
