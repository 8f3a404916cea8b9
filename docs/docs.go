// Package docs holds the OpenAPI document served at /swagger/ by the gateway.
// Regenerate with `swag init -g internal/api/router.go`.
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
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Logout", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/session": {
            "get": {"tags": ["auth"], "summary": "Current session", "responses": {"200": {"description": "OK"}}}
        },
        "/api/books": {
            "get": {"tags": ["books"], "summary": "List books", "responses": {"200": {"description": "OK"}}}
        },
        "/api/books/{id}": {
            "get": {"tags": ["books"], "summary": "Get a book", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/cart": {
            "get": {"tags": ["cart"], "summary": "Show the cart", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["cart"], "summary": "Empty the cart", "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/api/cart/purchases": {
            "post": {"tags": ["cart"], "summary": "Add a purchase to the cart", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/api/cart/loans": {
            "post": {"tags": ["cart"], "summary": "Add a loan to the cart", "responses": {"201": {"description": "Created"}}}
        },
        "/api/cart/{kind}/{book_id}": {
            "delete": {"tags": ["cart"], "summary": "Remove a book from the cart", "responses": {"200": {"description": "OK"}}}
        },
        "/api/checkout": {
            "get": {"tags": ["checkout"], "summary": "Checkout state", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["checkout"], "summary": "Check out", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/api/bills": {
            "get": {"tags": ["bills"], "summary": "My bills", "responses": {"200": {"description": "OK"}}}
        },
        "/api/bills/{id}": {
            "get": {"tags": ["bills"], "summary": "Get a bill", "responses": {"200": {"description": "OK"}}}
        },
        "/api/profile": {
            "get": {"tags": ["profile"], "summary": "My profile", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["profile"], "summary": "Update my profile", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["profile"], "summary": "Delete my account", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/admin/books": {
            "post": {"tags": ["admin"], "summary": "Create a book", "responses": {"201": {"description": "Created"}}}
        },
        "/api/admin/books/{id}": {
            "put": {"tags": ["admin"], "summary": "Update a book", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["admin"], "summary": "Delete a book", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/admin/bills": {
            "get": {"tags": ["admin"], "summary": "All bills", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/users": {
            "get": {"tags": ["admin"], "summary": "List users", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/users/{id}": {
            "get": {"tags": ["admin"], "summary": "Get a user", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["admin"], "summary": "Delete a user", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/admin/users/{id}/role": {
            "put": {"tags": ["admin"], "summary": "Change a user's role", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/users/{id}/bills": {
            "get": {"tags": ["admin"], "summary": "A user's bills", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/users/{id}/books": {
            "get": {"tags": ["admin"], "summary": "A user's books", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront gateway",
	Description:      "Session, cart and checkout for the library storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
