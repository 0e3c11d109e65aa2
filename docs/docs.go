// Package docs holds the OpenAPI document served at /docs. It mirrors the
// swag annotations on the handlers; regenerate with
// swag init -g cmd/server/main.go.
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
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                },
                "summary": "Liveness check",
                "tags": [
                    "health"
                ]
            }
        },
        "/health/deep": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.HealthResponse"
                        }
                    },
                    "503": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.HealthResponse"
                        }
                    }
                },
                "summary": "Dependency health check",
                "tags": [
                    "health"
                ]
            }
        },
        "/api/v1/recommendations": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.RecommendationResult"
                        }
                    },
                    "422": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Generate a recommendation",
                "tags": [
                    "recommendations"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "search model",
                        "name": "model",
                        "in": "query"
                    },
                    {
                        "description": "project requirements",
                        "name": "requirements",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/models.ProjectRequirements"
                        },
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/sessions/{sessionId}/recommendation": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.RecommendationResult"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Generate a recommendation for stored requirements",
                "tags": [
                    "recommendations"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "session id",
                        "name": "sessionId",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "search model",
                        "name": "model",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/sessions/{sessionId}/export": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/bundle.Bundle"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Export a signed recommendation bundle",
                "tags": [
                    "recommendations"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "session id",
                        "name": "sessionId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/requirements": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "422": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Store project requirements",
                "tags": [
                    "requirements"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "project requirements",
                        "name": "requirements",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/models.ProjectRequirements"
                        },
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/requirements/{sessionId}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Read stored requirements",
                "tags": [
                    "requirements"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "session id",
                        "name": "sessionId",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/runs/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "501": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Aggregate run statistics",
                "tags": [
                    "runs"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "trailing window, e.g. 24h",
                        "name": "window",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/events/recommendations": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "501": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Most recent recommendation events, newest first",
                "tags": [
                    "runs"
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "maximum events",
                        "name": "limit",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/search": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Search for related projects and docs",
                "tags": [
                    "search"
                ],
                "consumes": [
                    "application/json"
                ]
            }
        },
        "/api/v1/settings/backend": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Read the backend URL",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ]
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Update the backend URL",
                "tags": [
                    "settings"
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ],
                "parameters": [
                    {
                        "description": "backend URL",
                        "name": "body",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/handlers.BackendRequest"
                        },
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/settings/backend/test": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Test the backend connection",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ]
            }
        },
        "/api/v1/settings/api-keys": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Report which API keys are set",
                "tags": [
                    "settings"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ]
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    },
                    "401": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Set or clear API keys",
                "tags": [
                    "settings"
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "Bearer": []
                    }
                ]
            }
        },
        "/api/v1/suggestions/healthcare": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/suggest.Suggestion"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    },
                    "502": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/middleware.APIError"
                        }
                    }
                },
                "summary": "Suggest hospital system requirements",
                "tags": [
                    "suggestions"
                ],
                "consumes": [
                    "application/json"
                ]
            }
        }
    },
    "definitions": {
        "bundle.Bundle": {
            "type": "object",
            "properties": {
                "version": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "content_hash": {
                    "type": "string"
                },
                "hash_chain": {
                    "type": "string"
                },
                "signature": {
                    "type": "string"
                },
                "requirements": {
                    "$ref": "#/definitions/models.ProjectRequirements"
                },
                "result": {
                    "$ref": "#/definitions/models.RecommendationResult"
                }
            }
        },
        "handlers.BackendRequest": {
            "type": "object",
            "required": [
                "backend_url"
            ],
            "properties": {
                "backend_url": {
                    "type": "string"
                }
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "service": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "middleware.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "string"
                },
                "retry_after_ms": {
                    "type": "integer"
                }
            }
        },
        "models.ProjectRequirements": {
            "type": "object",
            "properties": {
                "domain": {
                    "type": "string"
                },
                "projectName": {
                    "type": "string"
                },
                "projectType": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "scale": {
                    "type": "string"
                },
                "budget": {
                    "type": "string"
                },
                "timeConstraints": {
                    "type": "string"
                },
                "security": {
                    "type": "string"
                },
                "additionalRequirements": {
                    "type": "string"
                },
                "features": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "models.RecommendationResult": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "origin": {
                    "type": "string"
                },
                "partial": {
                    "type": "boolean"
                },
                "notices": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "recommendation": {
                    "type": "object"
                },
                "generated_at": {
                    "type": "string"
                }
            }
        },
        "suggest.Suggestion": {
            "type": "object"
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "DesignPanda API",
	Description:      "Architecture recommendation service with a local fallback when the AI backend is unavailable.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
