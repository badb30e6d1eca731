// Package docs registers the OpenAPI description of the issue API served
// under /swagger. Keep it in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/issues": {
            "get": {
                "description": "Returns every issue, newest first",
                "produces": ["application/json"],
                "tags": ["Issues"],
                "summary": "List issues",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/model.Issue"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponse"}
                    }
                }
            },
            "post": {
                "description": "Status defaults to Open and priority to Medium",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Issues"],
                "summary": "Create an issue",
                "parameters": [
                    {
                        "description": "New issue",
                        "name": "issue",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.IssueInput"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/model.Issue"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponse"}
                    }
                }
            }
        },
        "/issues/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Issues"],
                "summary": "Get an issue",
                "parameters": [
                    {"type": "integer", "description": "Issue ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/model.Issue"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handler.MessageResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponse"}
                    }
                }
            },
            "put": {
                "description": "Only the fields present in the body are changed",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Issues"],
                "summary": "Update an issue",
                "parameters": [
                    {"type": "integer", "description": "Issue ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "issue",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.IssueInput"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/model.Issue"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handler.MessageResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponse"}
                    }
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Issues"],
                "summary": "Delete an issue",
                "parameters": [
                    {"type": "integer", "description": "Issue ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.DeleteIssueResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/handler.ValidationErrorResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/handler.MessageResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponse"}
                    }
                }
            }
        },
        "/test-db": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Check the database connection",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.DeleteIssueResponse": {
            "type": "object",
            "properties": {
                "deletedIssue": {"$ref": "#/definitions/model.Issue"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorDetail": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.ErrorDetail"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/validation.FieldError"}
                }
            }
        },
        "model.Issue": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "status": {"type": "string", "enum": ["Open", "In Progress", "Closed"]},
                "title": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "model.IssueInput": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "priority": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "status": {"type": "string", "enum": ["Open", "In Progress", "Closed"]},
                "title": {"type": "string"}
            }
        },
        "validation.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5001",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Issue Tracker API",
	Description:      "REST API for creating, listing, updating and deleting issues.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
