// Package docs registers the OpenAPI document of the bars API with swag.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/me": {
            "get": {
                "summary": "Profile of the authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "User not registered", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "put": {
                "summary": "Register or update the authenticated user",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Invalid profile", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/favourites": {
            "get": {
                "summary": "Favourites of the authenticated user",
                "parameters": [
                    {"in": "query", "name": "sort", "type": "string", "enum": ["name", "createdAt"]},
                    {"in": "query", "name": "direction", "type": "string", "enum": ["asc", "desc"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Favourite"}}},
                    "400": {"description": "Invalid sort field or direction", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "User not registered", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/favourites/nearby": {
            "get": {
                "summary": "Favourites nearest first",
                "parameters": [
                    {"in": "query", "name": "lat", "type": "number", "required": true},
                    {"in": "query", "name": "lng", "type": "number", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid origin", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/favourites.geojson": {
            "get": {
                "summary": "Favourites as a GeoJSON FeatureCollection",
                "produces": ["application/geo+json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favourites/{placeId}": {
            "post": {
                "summary": "Add a place to the favourites",
                "parameters": [{"in": "path", "name": "placeId", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Workflow outcome", "schema": {"$ref": "#/definitions/State"}},
                    "502": {"description": "Backend failure; partial is set when only half of the favourite was saved", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "summary": "Remove a place from the favourites",
                "parameters": [{"in": "path", "name": "placeId", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Workflow outcome", "schema": {"$ref": "#/definitions/State"}},
                    "409": {"description": "The last favourite cannot be removed", "schema": {"$ref": "#/definitions/Error"}},
                    "502": {"description": "Backend failure", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/favourites/{placeId}/state": {
            "get": {
                "summary": "State of the latest add or remove",
                "parameters": [{"in": "path", "name": "placeId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/State"}}}
            }
        },
        "/places/{placeId}": {
            "get": {
                "summary": "Place details from the maps provider",
                "parameters": [{"in": "path", "name": "placeId", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Details unavailable", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "partial": {"type": "boolean"}}
        },
        "State": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["idle", "in_flight", "success", "failed"]},
                "reason": {"type": "string"}
            }
        },
        "User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "username": {"type": "string"}}
        },
        "ProfileRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}}
        },
        "Favourite": {
            "type": "object",
            "properties": {
                "place": {"type": "object"},
                "membership": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bars API",
	Description:      "Favourite bars of authenticated users.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
