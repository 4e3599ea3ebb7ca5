package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerOperationalRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerOperationalRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/readyz", handler.Ready)
	app.Get("/metrics", handler.metrics.Handler())
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.rateLimit(handler.limiters.global))

	auth := api.Group("/auth")
	auth.Post("/register", handler.rateLimit(handler.limiters.auth), handler.Register)
	auth.Post("/login", handler.rateLimit(handler.limiters.auth), handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("/name", handler.UpdateProfileName)
	profile.Put("/password", handler.ChangePassword)

	health := api.Group("/health", handler.AuthRequired)
	health.Post("/save", handler.SaveHealthProfile)
	health.Get("", handler.GetHealthProfile)

	api.Delete("/account", handler.AuthRequired, handler.DeleteAccount)

	for _, route := range metricRoutes {
		registerMetricRoutes(api, handler, route)
	}

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Post("", handler.rateLimit(handler.limiters.goal), handler.CreateGoal)
	goals.Get("", handler.ListGoals)
	goals.Get("/:id/progress", handler.GetGoalProgress)
	goals.Delete("/:id", handler.DeleteGoal)
}

func registerMetricRoutes(api fiber.Router, handler *Handler, route metricRoute) {
	metric := api.Group("/"+route.Path, handler.AuthRequired)
	metric.Post("/set", handler.SetMetricGoal(route))
	metric.Get("", handler.GetMetricGoal(route))
	metric.Delete("", handler.DeleteMetricGoal(route))

	metric.Post("/log", handler.rateLimit(handler.limiters.log), handler.LogMetric(route))
	metric.Get("/logs", handler.ListMetricLogs(route))
	metric.Put("/log/:logId", handler.UpdateMetricLog(route))
	metric.Delete("/log/:logId", handler.DeleteMetricLog(route))

	metric.Delete("/reset/:period", handler.ResetMetricLogs(route))
}
