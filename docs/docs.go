// Package docs registers the Swagger document served under /swagger.
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
        "/providers/match": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Providers for a free-form location",
                "parameters": [
                    {
                        "description": "Location and search parameters",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.MatchRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RankedProvider"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/providers/nearby": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Providers near a coordinate",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lng", "in": "query", "required": true},
                    {"type": "number", "description": "Search radius in km", "name": "max_distance_km", "in": "query"},
                    {"type": "integer", "description": "Maximum number of results", "name": "limit", "in": "query"},
                    {"type": "boolean", "description": "Include unavailable providers", "name": "include_unavailable", "in": "query"},
                    {"type": "string", "description": "Comma separated service filter", "name": "services", "in": "query"},
                    {"type": "number", "description": "Minimum mean rating", "name": "min_rating", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RankedProvider"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/providers/region": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Providers registered in a city or province",
                "parameters": [
                    {"type": "string", "description": "City, matched exactly", "name": "city", "in": "query"},
                    {"type": "string", "description": "Province, matched exactly", "name": "province", "in": "query"},
                    {"type": "integer", "description": "Maximum number of results", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Comma separated service filter", "name": "services", "in": "query"},
                    {"type": "number", "description": "Minimum mean rating", "name": "min_rating", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RankedProvider"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.MatchRequest": {
            "type": "object",
            "properties": {
                "location": {"$ref": "#/definitions/models.LocationDescriptor"},
                "params": {"$ref": "#/definitions/models.SearchParams"}
            }
        },
        "models.Coordinate": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.LocationDescriptor": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "coordinates": {"$ref": "#/definitions/models.Coordinate"},
                "province": {"type": "string"}
            }
        },
        "models.RankedProvider": {
            "type": "object",
            "properties": {
                "availability": {"type": "string", "enum": ["available", "limited", "unavailable"]},
                "bio": {"type": "string"},
                "distance_km": {"type": "number"},
                "distance_label": {"type": "string"},
                "id": {"type": "string"},
                "location": {"$ref": "#/definitions/models.LocationDescriptor"},
                "name": {"type": "string"},
                "photo_url": {"type": "string"},
                "rating": {"type": "number"},
                "review_count": {"type": "integer"},
                "role": {"type": "string", "enum": ["provider", "agency"]},
                "services": {"type": "array", "items": {"type": "string"}},
                "verified": {"type": "boolean"}
            }
        },
        "models.SearchParams": {
            "type": "object",
            "properties": {
                "include_unavailable": {"type": "boolean"},
                "max_distance_km": {"type": "number"},
                "min_rating": {"type": "number"},
                "result_limit": {"type": "integer"},
                "service_filter": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Provider Match API",
	Description:      "Finds nearby service providers ranked by distance and rating.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
