// Package apidocs holds the OpenAPI document served under /swagger/doc.json.
// Regenerate with `swag init -g cmd/classifyd/docs.go -o internal/apidocs`.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "classifyd maintainers"
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
        "/api/classify": {
            "post": {
                "description": "Resizes the uploaded image and returns the most probable class.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["classify"],
                "summary": "Classify an image",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Image to classify",
                        "name": "image",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.ClassifyResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        },
        "/api/labels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["classify"],
                "summary": "List class labels in model output order",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.LabelsResponse"}
                    }
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Classifier state and counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.StatusResponse"}
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "ready"},
                    "503": {"description": "model unavailable"}
                }
            }
        }
    },
    "definitions": {
        "types.ClassifyResponse": {
            "type": "object",
            "properties": {
                "confidence": {"type": "string", "example": "85.00%"},
                "result": {"type": "string", "example": "Meningioma Tumor"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "No image provided"}
            }
        },
        "types.LabelsResponse": {
            "type": "object",
            "properties": {
                "labels": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ModelInfo": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "input_name": {"type": "string"},
                "output_name": {"type": "string"},
                "input_shape": {"type": "array", "items": {"type": "integer"}},
                "output_width": {"type": "integer"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "example": "ready"},
                "model": {"$ref": "#/definitions/types.ModelInfo"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "image_size": {"type": "integer", "example": 150},
                "error": {"type": "string"},
                "classifications_total": {"type": "integer", "example": 42},
                "failures_total": {"type": "integer", "example": 3},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "server_time_unix": {"type": "integer", "example": 1700000000}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "classifyd API",
	Description:      "HTTP API for image classification with a preloaded model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
