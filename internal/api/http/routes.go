package httpapi

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Anilkaram/AI-weather-chat-bot/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Two surfaces
// share one dispatcher: the tool envelope the chat workflow invokes, and a
// plain query API.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/tools", listTools)

	app.Post("/tools/execute", func(c *fiber.Ctx) error {
		var req toolRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reply := service.Handle(c.Context(), req.toQuery())
		return writeReply(c, reply)
	})

	v1 := app.Group("/api/v1")
	v1.Get("/weather", func(c *fiber.Ctx) error {
		var req weatherQuery
		req.Location = strings.TrimSpace(c.Query("location"))
		req.Forecast = c.QueryBool("forecast")
		req.Days = c.QueryInt("days")

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reply := service.Handle(c.Context(), req.toQuery())
		return writeReply(c, reply)
	})
}

// listTools returns the tool manifest the orchestration workflow reads to
// discover what it can invoke.
func listTools(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tools": []fiber.Map{
			{
				"name":        "get_weather",
				"description": "Get current weather information for a city",
				"parameters": fiber.Map{
					"type": "object",
					"properties": fiber.Map{
						"city": fiber.Map{
							"type":        "string",
							"description": "The name of the city",
						},
					},
					"required": []string{"city"},
				},
			},
			{
				"name":        "get_forecast",
				"description": "Get a multi-day weather forecast for a city",
				"parameters": fiber.Map{
					"type": "object",
					"properties": fiber.Map{
						"city": fiber.Map{
							"type":        "string",
							"description": "The name of the city",
						},
						"days": fiber.Map{
							"type":        "integer",
							"description": "Number of days to forecast (1-7)",
						},
					},
					"required": []string{"city"},
				},
			},
		},
	})
}

// toolRequest is the envelope the chat workflow posts to /tools/execute.
type toolRequest struct {
	ToolName   string `json:"tool_name" validate:"required,oneof=get_weather get_forecast"`
	Parameters struct {
		City string `json:"city" validate:"required"`
		Days int    `json:"days" validate:"omitempty,min=1,max=7"`
	} `json:"parameters"`
}

func (r toolRequest) toQuery() weather.WeatherQuery {
	intent := weather.IntentCurrent
	if r.ToolName == "get_forecast" {
		intent = weather.IntentForecast
	}
	return weather.WeatherQuery{
		Location:    r.Parameters.City,
		Intent:      intent,
		HorizonDays: r.Parameters.Days,
	}
}

// weatherQuery holds query parameters for the direct API.
type weatherQuery struct {
	Location string `validate:"required"`
	Forecast bool
	Days     int `validate:"omitempty,min=1,max=7"`
}

func (q weatherQuery) toQuery() weather.WeatherQuery {
	intent := weather.IntentCurrent
	if q.Forecast {
		intent = weather.IntentForecast
	}
	return weather.WeatherQuery{
		Location:    q.Location,
		Intent:      intent,
		HorizonDays: q.Days,
	}
}

// writeReply maps a dispatcher reply onto the HTTP response: 200 with the
// reply text on success, an error status keyed by kind otherwise. The body
// shape is identical in both cases so the workflow parses one envelope.
func writeReply(c *fiber.Ctx, reply weather.WeatherReply) error {
	if reply.OK {
		return c.JSON(fiber.Map{
			"success":  true,
			"response": reply.Text,
		})
	}
	return c.Status(statusForKind(reply.ErrorKind)).JSON(fiber.Map{
		"success":  false,
		"error":    string(reply.ErrorKind),
		"response": reply.Text,
	})
}

func statusForKind(kind weather.ErrorKind) int {
	switch kind {
	case weather.KindMalformedQuery:
		return fiber.StatusBadRequest
	case weather.KindLocationNotFound:
		return fiber.StatusNotFound
	case weather.KindProviderRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusBadGateway
	}
}
