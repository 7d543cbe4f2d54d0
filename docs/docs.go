// Package docs registers the OpenAPI document served under /docs.
// Regenerate with: swag init -g cmd/api/main.go --parseInternal
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/airlines": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Airlines"],
                "summary": "List registered airlines",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/airlines.AirlinesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/airlines/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Airlines"],
                "summary": "Get an airline",
                "parameters": [
                    {"type": "string", "description": "Airline ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/airlines.AirlineResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Airlines"],
                "summary": "Register or rename an airline",
                "parameters": [
                    {"type": "string", "description": "Airline ID", "name": "id", "in": "path", "required": true},
                    {"description": "Airline payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/airlines.AirlineRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/airlines.AirlineResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Airlines"],
                "summary": "Delete an airline",
                "parameters": [
                    {"type": "string", "description": "Airline ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/routes": {
            "post": {
                "description": "Stores a single route record with idempotency handling",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Routes"],
                "summary": "Create a new route",
                "parameters": [
                    {
                        "description": "Route payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/routes.CreateRouteRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Duplicate route", "schema": {"$ref": "#/definitions/routes.CreateRouteResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/routes.CreateRouteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/routes/bulk": {
            "post": {
                "description": "Validates every route, then stores them individually",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Routes"],
                "summary": "Bulk create routes",
                "parameters": [
                    {
                        "description": "Bulk route payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/routes.BulkCreateRoutesRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/routes.BulkCreateRoutesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/routes/search/by-year": {
            "get": {
                "description": "Returns every route dated in the given calendar year",
                "produces": ["application/json"],
                "tags": ["Routes"],
                "summary": "Routes of a year",
                "parameters": [
                    {"type": "integer", "description": "Calendar year, 1970 or later", "name": "year", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/routes.RoutesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/routes/search/in-month": {
            "get": {
                "description": "Reports whether any route lies in the calendar month of date",
                "produces": ["application/json"],
                "tags": ["Routes"],
                "summary": "Any route in a month",
                "parameters": [
                    {"type": "string", "description": "Date in the month, YYYY-MM-DD", "name": "date", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/routes.InMonthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/routes/filter": {
            "post": {
                "description": "Sums a metric per time bucket and category over a date range, zero-filling empty buckets",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Filter"],
                "summary": "Aggregate routes into a chart matrix",
                "parameters": [
                    {
                        "description": "Filter payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/filter.FilterRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/filter.FilterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/settings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Save a chart setting",
                "parameters": [
                    {
                        "description": "Setting payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/settings.SettingRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/settings.SettingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/settings/search": {
            "get": {
                "description": "Case-insensitive substring match on name or creator",
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Search chart settings",
                "parameters": [
                    {"type": "string", "description": "Search term", "name": "term", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/settings.SettingsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/settings/visible": {
            "get": {
                "description": "The creator's own settings plus every shareable one",
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Settings visible to a creator",
                "parameters": [
                    {"type": "string", "description": "Creator name", "name": "creator", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/settings.SettingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/settings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Get a chart setting",
                "parameters": [
                    {"type": "string", "description": "Setting ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/settings.SettingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Settings"],
                "summary": "Delete a chart setting",
                "parameters": [
                    {"type": "string", "description": "Setting ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid_request"},
                "message": {"type": "string"}
            }
        },
        "airlines.AirlineRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Lufthansa"}
            }
        },
        "airlines.AirlineResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "LH"},
                "name": {"type": "string", "example": "Lufthansa"}
            }
        },
        "airlines.AirlinesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "airlines": {"type": "array", "items": {"$ref": "#/definitions/airlines.AirlineResponse"}}
            }
        },
        "routes.CreateRouteRequest": {
            "description": "Route creation DTO. date accepts YYYY-MM-DD or RFC 3339.",
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2014-01-01"},
                "delays": {"type": "number"},
                "cancelled": {"type": "number"},
                "passengerCount": {"type": "number", "example": 180},
                "flightCount": {"type": "number", "example": 1},
                "airline": {"type": "string", "example": "LH"},
                "origin": {"type": "string", "example": "FRA"},
                "destination": {"type": "string", "example": "JFK"}
            }
        },
        "routes.CreateRouteResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "routes.BulkCreateRoutesRequest": {
            "type": "object",
            "properties": {
                "routes": {"type": "array", "items": {"$ref": "#/definitions/routes.CreateRouteRequest"}}
            }
        },
        "routes.BulkCreateRoutesResponse": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "duplicates": {"type": "integer"}
            }
        },
        "routes.RouteResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "delays": {"type": "number"},
                "cancelled": {"type": "number"},
                "passengerCount": {"type": "number"},
                "flightCount": {"type": "number"},
                "airline": {"type": "string"},
                "origin": {"type": "string"},
                "destination": {"type": "string"}
            }
        },
        "routes.RoutesResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "routes": {"type": "array", "items": {"$ref": "#/definitions/routes.RouteResponse"}}
            }
        },
        "routes.InMonthResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "exists": {"type": "boolean"}
            }
        },
        "filter.FilterRequest": {
            "description": "Aggregation request. Dates accept YYYY-MM-DD or RFC 3339; the range is half-open.",
            "type": "object",
            "properties": {
                "rangeFrom": {"type": "string", "example": "2014-01-01"},
                "rangeTo": {"type": "string", "example": "2014-04-01"},
                "axis": {
                    "type": "object",
                    "properties": {
                        "x": {"type": "string", "example": "AIRLINE"},
                        "y": {"type": "string", "example": "FLIGHTS"}
                    }
                },
                "filter": {
                    "type": "object",
                    "properties": {
                        "timestep": {"type": "string", "example": "MONTH"},
                        "airlines": {"type": "array", "items": {"type": "string"}},
                        "destinations": {"type": "array", "items": {"type": "string"}}
                    }
                }
            }
        },
        "filter.FilterResponse": {
            "type": "object",
            "properties": {
                "x": {"type": "array", "items": {"type": "string"}},
                "y": {"type": "string"},
                "z": {"type": "string"},
                "granularity": {"type": "string"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "data": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "number"}}
                },
                "series": {
                    "type": "object",
                    "additionalProperties": {"type": "number"}
                }
            }
        },
        "settings.SettingAxis": {
            "type": "object",
            "properties": {
                "x": {"type": "string", "example": "TIME"},
                "y": {"type": "string", "example": "FLIGHTS"}
            }
        },
        "settings.SettingFilter": {
            "type": "object",
            "properties": {
                "timestep": {"type": "string", "example": "MONTH"},
                "airlines": {"type": "array", "items": {"type": "string"}},
                "origins": {"type": "array", "items": {"type": "string"}},
                "destinations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "settings.SettingRequest": {
            "description": "Chart setting. Range bounds are optional and must lie in the past.",
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Lufthansa monthly"},
                "creator": {"type": "string", "example": "rene"},
                "shareable": {"type": "boolean"},
                "rangeFrom": {"type": "string", "example": "2014-01-01"},
                "rangeTo": {"type": "string", "example": "2015-01-01"},
                "axis": {"$ref": "#/definitions/settings.SettingAxis"},
                "filter": {"$ref": "#/definitions/settings.SettingFilter"}
            }
        },
        "settings.SettingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "creator": {"type": "string"},
                "shareable": {"type": "boolean"},
                "rangeFrom": {"type": "string"},
                "rangeTo": {"type": "string"},
                "axis": {"$ref": "#/definitions/settings.SettingAxis"},
                "filter": {"$ref": "#/definitions/settings.SettingFilter"}
            }
        },
        "settings.SettingsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "settings": {"type": "array", "items": {"$ref": "#/definitions/settings.SettingResponse"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Route Analytics API",
	Description:      "Stores flight-route records and aggregates them into time-bucketed chart matrices.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
