// Package docs holds the generated swagger specification.
// Regenerate with: swag init -g cmd/finsight/main.go
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
        "/assistant/ask": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Ask about expenses",
                "parameters": [{
                    "description": "Question and optional expenses",
                    "name": "request",
                    "in": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/dto.AskRequest"}
                }],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AskResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/expenses": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List expenses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ExpenseResponse"}}}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Record an expense",
                "parameters": [{
                    "description": "Expense to record",
                    "name": "request",
                    "in": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/dto.CreateExpenseRequest"}
                }],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ExpenseResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/expenses/categorize": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Categorize an expense description",
                "parameters": [{
                    "description": "Description to classify",
                    "name": "request",
                    "in": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/dto.CategorizeRequest"}
                }],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategorizeResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/insights": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "List stored insights",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InsightListResponse"}}
                }
            }
        },
        "/insights/generate": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["insights"],
                "summary": "Generate insights",
                "parameters": [{
                    "description": "Expenses to analyze",
                    "name": "request",
                    "in": "body",
                    "required": true,
                    "schema": {"$ref": "#/definitions/dto.GenerateInsightsRequest"}
                }],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InsightListResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "dto.AskRequest": {
            "type": "object",
            "properties": {
                "expenses": {"type": "array", "items": {"$ref": "#/definitions/dto.ExpenseInput"}},
                "question": {"type": "string"}
            }
        },
        "dto.AskResponse": {
            "type": "object",
            "properties": {"answer": {"type": "string"}}
        },
        "dto.CategorizeRequest": {
            "type": "object",
            "properties": {"description": {"type": "string"}}
        },
        "dto.CategorizeResponse": {
            "type": "object",
            "properties": {"category": {"type": "string"}}
        },
        "dto.CreateExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.ExpenseInput": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "dto.ExpenseResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"}
            }
        },
        "dto.GenerateInsightsRequest": {
            "type": "object",
            "properties": {
                "expenses": {"type": "array", "items": {"$ref": "#/definitions/dto.ExpenseInput"}}
            }
        },
        "dto.InsightListResponse": {
            "type": "object",
            "properties": {
                "insights": {"type": "array", "items": {"$ref": "#/definitions/dto.InsightResponse"}}
            }
        },
        "dto.InsightResponse": {
            "type": "object",
            "properties": {
                "action": {"type": "string"},
                "confidence": {"type": "number"},
                "id": {"type": "string"},
                "message": {"type": "string"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "external_id": {"type": "string"},
                "id": {"type": "string"},
                "image_url": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Finsight API",
	Description:      "AI-assisted expense insight service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
