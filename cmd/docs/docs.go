// Package docs registers the OpenAPI document served at /swagger. It is
// maintained by hand; keep it in step with the swag annotations in
// internal/handlers.
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
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Retrieves all transactions of the authenticated user, most recent first.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to list transactions", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Records an income or expense for the authenticated user. The owner is always the caller.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [
                    {"description": "Transaction details", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to create transaction", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/transactions/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists the allowed categories for each transaction kind.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Category catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CategoryCatalogResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/transactions/filter": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Retrieves the authenticated user's transactions matching every supplied criterion.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Filter transactions",
                "parameters": [
                    {"type": "string", "description": "Inclusive lower bound (RFC 3339 or YYYY-MM-DD)", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "Inclusive upper bound (RFC 3339 or YYYY-MM-DD, whole day)", "name": "endDate", "in": "query"},
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "string", "description": "income or expense", "name": "kind", "in": "query"},
                    {"type": "string", "description": "Alias of kind", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}}},
                    "400": {"description": "Invalid filter", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to filter transactions", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/transactions/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Totals, balance and per-category expenses over all of the authenticated user's transactions.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Transaction statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to compute statistics", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Retrieves one of the authenticated user's transactions.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Transaction not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to get transaction", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Changes only the supplied fields of one of the authenticated user's transactions. Also served on PATCH.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "400": {"description": "Invalid input", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Transaction not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to update transaction", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Permanently removes one of the authenticated user's transactions.",
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [
                    {"type": "string", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteTransactionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Transaction not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Failed to delete transaction", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.CategoryCatalogResponse": {
            "type": "object",
            "properties": {
                "expense": {"type": "array", "items": {"type": "string"}},
                "income": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.CreateTransactionRequest": {
            "type": "object",
            "required": ["amount", "category"],
            "properties": {
                "amount": {"type": "string", "example": "150.00"},
                "category": {"type": "string", "example": "Nourriture"},
                "description": {"type": "string"},
                "kind": {"type": "string", "example": "expense"},
                "occurredAt": {"type": "string"},
                "type": {"type": "string", "description": "Alias of kind"}
            }
        },
        "dto.DeleteTransactionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.StatsResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "string"},
                "expensesByCategory": {"type": "object", "additionalProperties": {"type": "string"}},
                "totalExpense": {"type": "string"},
                "totalIncome": {"type": "string"},
                "transactionCount": {"type": "integer"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "occurredAt": {"type": "string"},
                "ownerId": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "kind": {"type": "string"},
                "occurredAt": {"type": "string"},
                "type": {"type": "string", "description": "Alias of kind"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [{"BearerAuth": []}]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:2000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Budget Tracker API",
	Description:      "Personal finance tracker: income and expense transactions with filtering and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
