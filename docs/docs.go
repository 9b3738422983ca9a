// Package docs provides the generated swagger specification.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "email": "support@shelfmate.app"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Librarian login",
                "responses": {
                    "200": {"description": "Login successful"},
                    "400": {"description": "Invalid request data"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books",
                "responses": {
                    "200": {"description": "Books retrieved"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Add a book",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Copies merged into existing book"},
                    "201": {"description": "Book added"},
                    "409": {"description": "ISBN already registered with different details"}
                }
            }
        },
        "/books/overdue": {
            "get": {
                "produces": ["application/json"],
                "tags": ["issuance"],
                "summary": "List overdue loans",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Overdue loans retrieved"}
                }
            }
        },
        "/books/{identifier}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get a book",
                "responses": {
                    "200": {"description": "Book retrieved"},
                    "404": {"description": "Book not found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Update a book",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Book updated"},
                    "404": {"description": "Book not found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Delete a book",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Book deleted"},
                    "409": {"description": "Book has active loans"}
                }
            }
        },
        "/books/{identifier}/issue": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["issuance"],
                "summary": "Issue a book",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Book issued"},
                    "400": {"description": "No copies available"},
                    "409": {"description": "Student already holds an unreturned copy"}
                }
            }
        },
        "/students": {
            "get": {
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "Students retrieved"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Register a student",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Student registered"},
                    "409": {"description": "Duplicate roll number, phone or email"}
                }
            }
        },
        "/students/{identifier}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "Get a student",
                "responses": {
                    "200": {"description": "Student retrieved"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{identifier}/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["students"],
                "summary": "List a student's loans",
                "responses": {
                    "200": {"description": "Loans retrieved"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{identifier}/books/{issueId}/return": {
            "post": {
                "produces": ["application/json"],
                "tags": ["issuance"],
                "summary": "Return a book",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Book returned"},
                    "400": {"description": "Book already returned"},
                    "404": {"description": "Student or loan record not found"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "ok"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT token for authorization"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "ShelfMate API",
	Description:      "Book inventory and issuance service for a university library",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
