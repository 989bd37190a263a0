package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Health check endpoint",
                "responses": {"200": {"description": "Healthy", "schema": {"type": "string"}}}
            }
        },
        "/counter": {
            "get": {
                "produces": ["application/json"],
                "tags": ["counter"],
                "summary": "Get the counter",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/daycounter.View"}}}
            }
        },
        "/counter/date": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["counter"],
                "summary": "Select the start date",
                "parameters": [
                    {"type": "string", "description": "Start date, 2006-01-02 or RFC 3339", "name": "date", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daycounter.View"}},
                    "400": {"description": "Bad request", "schema": {"type": "string"}}
                }
            }
        },
        "/counter/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["counter"],
                "summary": "Reset the counter",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/daycounter.View"}}}
            }
        },
        "/picker/open": {
            "post": {
                "produces": ["application/json"],
                "tags": ["picker"],
                "summary": "Open the date picker",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/daycounter.View"}}}
            }
        },
        "/picker/change": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["picker"],
                "summary": "Report a picker change",
                "parameters": [
                    {"type": "string", "description": "Selected date, 2006-01-02 or RFC 3339", "name": "date", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/daycounter.View"}},
                    "400": {"description": "Bad request", "schema": {"type": "string"}}
                }
            }
        },
        "/picker/dismiss": {
            "post": {
                "produces": ["application/json"],
                "tags": ["picker"],
                "summary": "Dismiss the date picker",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/daycounter.View"}}}
            }
        },
        "/connect": {
            "get": {
                "produces": ["application/json"],
                "tags": ["websocket"],
                "summary": "WebSocket connection endpoint",
                "responses": {
                    "101": {"description": "Switching Protocols to WebSocket", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "daycounter.View": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "date_label": {"type": "string"},
                "start_date": {"type": "string"},
                "days_count": {"type": "integer"},
                "picker_visible": {"type": "boolean"},
                "picker_date": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Day Counter API",
	Description:      "Counts the whole days elapsed since a persisted start date",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
