// Package docs holds the OpenAPI description served under /swagger. Regenerate with
// `swag init -g cmd/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/bbs-service",
            "email": "support@example.com"
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
        "/api/bbs/calculate": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["BBS"],
                "summary": "Calculate a bar bending schedule",
                "parameters": [
                    {"type": "string", "description": "Idempotency key for request deduplication", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Bar groups and options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CalculateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Computed schedule", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "201": {"description": "Computed and saved schedule", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "400": {"description": "Invalid bar group, unit or design code", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Schedule reference already taken", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Impossible geometry", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/bbs/import": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["BBS"],
                "summary": "Calculate a schedule from an uploaded sheet",
                "parameters": [
                    {"type": "file", "description": "CSV or XLSX sheet", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Options as JSON", "name": "options", "in": "formData"},
                    {"type": "boolean", "description": "Save the computed schedule", "name": "save", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Computed schedule", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "400": {"description": "Unreadable sheet or invalid row", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "413": {"description": "Upload too large", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "415": {"description": "Unsupported sheet format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/bbs/export": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf", "text/plain"],
                "tags": ["BBS"],
                "summary": "Export a computed schedule",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv, xlsx, pdf or table", "name": "format", "in": "query"},
                    {"description": "Bar groups and options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CalculateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Schedule document", "schema": {"type": "file"}},
                    "400": {"description": "Invalid request or format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/bbs/template": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["text/csv"],
                "tags": ["BBS"],
                "summary": "Download the import template",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Blank sheet", "schema": {"type": "file"}},
                    "415": {"description": "Unsupported sheet format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/bbs/codes": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["BBS"],
                "summary": "List design codes and catalogs",
                "responses": {
                    "200": {"description": "Supported codes", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}}
                }
            }
        },
        "/api/rate-cards": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Rate Cards"],
                "summary": "Get the active rate card",
                "responses": {
                    "200": {"description": "Active rate card", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "404": {"description": "No rate card configured", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Rate card store unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Rate Cards"],
                "summary": "Publish a new rate card version",
                "parameters": [
                    {"description": "Rates", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateRateCardRequest"}}
                ],
                "responses": {
                    "200": {"description": "New active rate card", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "400": {"description": "Invalid rates", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/rate-cards/history": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Rate Cards"],
                "summary": "List rate card versions",
                "parameters": [
                    {"type": "integer", "description": "Number of versions", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Rate card versions, newest first", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}}
                }
            }
        },
        "/api/schedules": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Schedules"],
                "summary": "List saved schedules",
                "parameters": [
                    {"type": "string", "description": "Project name", "name": "project", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Number of schedules to skip", "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Saved schedules", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "503": {"description": "Schedule store unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/schedules/{reference}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Schedules"],
                "summary": "Get a saved schedule",
                "parameters": [
                    {"type": "string", "description": "Schedule reference", "name": "reference", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Saved schedule", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "404": {"description": "Unknown reference", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Audit"],
                "summary": "Query the audit trail",
                "parameters": [
                    {"type": "string", "description": "calculate, import, export, save_schedule or update_rate_card", "name": "action", "in": "query"},
                    {"type": "string", "description": "Actor", "name": "actor", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Entries to skip", "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Audit entries", "schema": {"$ref": "#/definitions/dto.SuccessResponse"}},
                    "403": {"description": "Admin role required", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Service is alive"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Service is ready", "schema": {"$ref": "#/definitions/http.ReadinessResponse"}},
                    "503": {"description": "A store is unavailable", "schema": {"$ref": "#/definitions/http.ReadinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ReadinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "circuit_breakers": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "object",
                        "properties": {
                            "state": {"type": "string", "example": "closed"},
                            "failures": {"type": "integer"}
                        }
                    }
                }
            }
        },
        "dto.CalculateScheduleRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "options": {"type": "object"},
                "save": {"type": "boolean"}
            }
        },
        "dto.UpdateRateCardRequest": {
            "type": "object",
            "properties": {
                "default_rate_per_kg": {"type": "number", "example": 70},
                "rates_by_diameter": {"type": "object", "additionalProperties": {"type": "number"}},
                "currency": {"type": "string", "example": "INR"}
            }
        },
        "dto.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"},
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bar Bending Schedule API",
	Description:      "Computes reinforcement bar bending schedules: cutting lengths, weights, splices and costs per design code.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
