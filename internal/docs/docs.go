// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/airports": {
            "get": {"tags": ["airports"], "summary": "List airports", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/page_size"}], "responses": {"200": {"description": "OK"}, "401": {"$ref": "#/responses/Unauthorized"}}},
            "post": {"tags": ["airports"], "summary": "Create an airport (admin)", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/Airport"}}], "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/BadRequest"}, "403": {"$ref": "#/responses/Forbidden"}}}
        },
        "/routes": {
            "get": {"tags": ["routes"], "summary": "List routes", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/page_size"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["routes"], "summary": "Create a route (admin)", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RouteRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/BadRequest"}}}
        },
        "/airplane_types": {
            "get": {"tags": ["airplane_types"], "summary": "List airplane types", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["airplane_types"], "summary": "Create an airplane type (admin)", "responses": {"201": {"description": "Created"}}}
        },
        "/airplane_types/{id}": {
            "get": {"tags": ["airplane_types"], "summary": "Retrieve an airplane type", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/NotFound"}}},
            "put": {"tags": ["airplane_types"], "summary": "Update an airplane type (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["airplane_types"], "summary": "Delete an airplane type (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/airlines": {
            "get": {"tags": ["airlines"], "summary": "List airlines", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["airlines"], "summary": "Create an airline (admin)", "responses": {"201": {"description": "Created"}}}
        },
        "/airlines/{id}": {
            "get": {"tags": ["airlines"], "summary": "Retrieve an airline", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["airlines"], "summary": "Update an airline (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["airlines"], "summary": "Delete an airline (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/airlines/{id}/upload-image": {
            "post": {"tags": ["airlines"], "summary": "Upload an airline logo (admin)", "consumes": ["multipart/form-data"], "parameters": [{"$ref": "#/parameters/id"}, {"in": "formData", "name": "logo", "type": "file", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/responses/BadRequest"}}}
        },
        "/airplanes": {
            "get": {"tags": ["airplanes"], "summary": "List airplanes", "parameters": [
                {"in": "query", "name": "name", "type": "string", "description": "case-insensitive substring of the airplane name"},
                {"in": "query", "name": "airplane_type", "type": "string", "description": "case-insensitive substring of the airplane type name"},
                {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/page_size"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["airplanes"], "summary": "Create an airplane (admin)", "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/BadRequest"}}}
        },
        "/airplanes/{id}": {
            "get": {"tags": ["airplanes"], "summary": "Retrieve an airplane", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["airplanes"], "summary": "Update an airplane (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["airplanes"], "summary": "Delete an airplane (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/crews": {
            "get": {"tags": ["crews"], "summary": "List crew members", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["crews"], "summary": "Create a crew member (admin)", "responses": {"201": {"description": "Created"}}}
        },
        "/ticket_class": {
            "get": {"tags": ["ticket_class"], "summary": "List ticket classes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ticket_class"], "summary": "Create a ticket class (admin)", "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/Conflict"}}}
        },
        "/flights": {
            "get": {"tags": ["flights"], "summary": "List flights with tickets_available", "parameters": [
                {"in": "query", "name": "departure_date", "type": "string", "format": "date", "description": "departure day (YYYY-MM-DD, UTC)"},
                {"in": "query", "name": "airplane", "type": "integer", "description": "airplane id"},
                {"in": "query", "name": "route", "type": "integer", "description": "route id"},
                {"$ref": "#/parameters/page"}, {"$ref": "#/parameters/page_size"}], "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/responses/BadRequest"}}},
            "post": {"tags": ["flights"], "summary": "Create a flight (admin)", "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/BadRequest"}}}
        },
        "/flights/{id}": {
            "get": {"tags": ["flights"], "summary": "Flight detail with taken_places", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/NotFound"}}},
            "put": {"tags": ["flights"], "summary": "Update a flight (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["flights"], "summary": "Delete a flight (admin)", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/orders": {
            "get": {"tags": ["orders"], "summary": "Orders of the caller, newest first", "parameters": [{"$ref": "#/parameters/page"}, {"$ref": "#/parameters/page_size"}], "responses": {"200": {"description": "OK"}, "401": {"$ref": "#/responses/Unauthorized"}}},
            "post": {"tags": ["orders"], "summary": "Book seats, all or nothing", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/OrderRequest"}}], "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/BadRequest"}, "409": {"$ref": "#/responses/Conflict"}}}
        },
        "/orders/{id}": {
            "get": {"tags": ["orders"], "summary": "Retrieve one of the caller's orders", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/NotFound"}}}
        }
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "type": "integer", "required": true},
        "page": {"in": "query", "name": "page", "type": "integer", "minimum": 1},
        "page_size": {"in": "query", "name": "page_size", "type": "integer", "minimum": 1, "maximum": 100}
    },
    "responses": {
        "BadRequest": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Error"}},
        "Unauthorized": {"description": "Missing or invalid credentials", "schema": {"$ref": "#/definitions/Error"}},
        "Forbidden": {"description": "Insufficient rights", "schema": {"$ref": "#/definitions/Error"}},
        "NotFound": {"description": "Not found", "schema": {"$ref": "#/definitions/Error"}},
        "Conflict": {"description": "Seat already booked or duplicate", "schema": {"$ref": "#/definitions/Error"}}
    },
    "definitions": {
        "Error": {"type": "object", "properties": {
            "error": {"type": "string"},
            "detail": {"type": "string"},
            "fields": {"type": "object", "additionalProperties": {"type": "string"}}}},
        "Airport": {"type": "object", "properties": {"name": {"type": "string"}, "closest_big_city": {"type": "string"}}},
        "RouteRequest": {"type": "object", "properties": {"source": {"type": "integer"}, "destination": {"type": "integer"}, "distance": {"type": "integer"}}},
        "OrderRequest": {"type": "object", "properties": {"tickets": {"type": "array", "items": {"type": "object", "properties": {
            "row": {"type": "integer"}, "seat": {"type": "integer"}, "flight": {"type": "integer"},
            "ticket_class": {"type": "string", "enum": ["economy", "business", "first_class", "premium_economy"]}}}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/airport",
	Schemes:          []string{},
	Title:            "Airport API",
	Description:      "Flight catalog and seat reservation API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
