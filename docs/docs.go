// Package docs holds the Swagger document served at /swagger/index.html.
// Regenerate it from the handler annotations with `swag init`.
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
        "/getSearch": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Search"],
                "summary": "Search restaurants",
                "parameters": [{"type": "string", "description": "Search text", "name": "q", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Restaurant"}}},
                    "429": {"description": "Rate limit exceeded", "schema": {"$ref": "#/definitions/models.ApiResponse"}}
                }
            }
        },
        "/home": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Home"],
                "summary": "Home page data",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "List categories",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        },
        "/categories/{name}/restaurants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "Restaurants in a category",
                "parameters": [
                    {"type": "string", "description": "Category name", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}
            }
        },
        "/restos/{placeId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Restaurants"],
                "summary": "Restaurant detail",
                "parameters": [{"type": "string", "name": "placeId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ApiResponse"}}
                }
            }
        },
        "/auth/google": {"get": {"tags": ["Auth - Google OAuth"], "summary": "Redirect to Google OAuth", "responses": {"307": {"description": "Redirect"}}}},
        "/auth/google/callback": {"get": {"tags": ["Auth - Google OAuth"], "summary": "Google OAuth callback", "responses": {"307": {"description": "Redirect"}}}},
        "/auth/google/token": {"post": {"tags": ["Auth - Google OAuth"], "summary": "Sign in with a Google ID token", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}},
        "/auth/email": {"post": {"tags": ["Auth - Email"], "summary": "Request a magic sign-in link", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}},
        "/auth/email/callback": {"get": {"tags": ["Auth - Email"], "summary": "Redeem a magic sign-in link", "responses": {"307": {"description": "Redirect"}}}},
        "/auth/register": {"post": {"tags": ["Auth - Credentials"], "summary": "Register with email and password", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}},
        "/auth/login": {"post": {"tags": ["Auth - Credentials"], "summary": "Sign in with email and password", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}},
        "/auth/session": {"get": {"tags": ["Auth"], "summary": "Current session", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}},
        "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Logout", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}},
        "/account": {
            "get": {"tags": ["Account"], "summary": "Current account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}},
            "patch": {"tags": ["Account"], "summary": "Update account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApiResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}
        },
        "/events": {"post": {"tags": ["Analytics"], "summary": "Capture an analytics event", "responses": {"202": {"description": "Accepted", "schema": {"$ref": "#/definitions/models.ApiResponse"}}}}}
    },
    "definitions": {
        "models.ApiResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "boolean"},
                "meta": {"$ref": "#/definitions/models.Pagination"},
                "rate_limit": {"$ref": "#/definitions/models.RateLimiter"},
                "redirect": {"type": "string"},
                "requested_entity": {"type": "string"}
            }
        },
        "models.Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "models.RateLimiter": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "remaining": {"type": "integer"},
                "reset_at": {"type": "string"},
                "reset_in_seconds": {"type": "integer"}
            }
        },
        "models.Restaurant": {
            "type": "object",
            "properties": {
                "place_id": {"type": "string"},
                "gofood_name": {"type": "string"},
                "address_components": {"type": "object"},
                "rating": {"type": "number"},
                "user_ratings_total": {"type": "integer"},
                "categories": {"type": "array", "items": {"type": "string"}},
                "price_level": {"type": "string"},
                "thumbnail": {"type": "string"},
                "opening_hours": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Nomato API",
	Description:      "Restaurant discovery: search, categories, restaurant pages, accounts and sign in.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
