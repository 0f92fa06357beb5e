package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExposesCounters(t *testing.T) {
	before := testutil.ToFloat64(MembershipOperations.WithLabelValues("add_member", "ok"))
	MembershipOperations.WithLabelValues("add_member", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(MembershipOperations.WithLabelValues("add_member", "ok")))

	app := fiber.New()
	app.Use(Middleware())
	app.Get("/metrics", Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "photoshare_membership_operations_total")
}

func observedStatuses(t *testing.T, route string) []string {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var statuses []string
	for _, mf := range families {
		if mf.GetName() != "photoshare_http_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == route {
				statuses = append(statuses, labels["status"])
			}
		}
	}
	return statuses
}

func TestMiddleware_RecordsErrorStatus(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.Equal(t, []string{"418"}, observedStatuses(t, "/teapot"))
	assert.Equal(t, []string{"500"}, observedStatuses(t, "/boom"))
}
