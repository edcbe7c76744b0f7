// Package docs holds the OpenAPI description served at /swagger/*.
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [{"description": "Refresh token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.refreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.meResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Change password",
                "parameters": [{"description": "Old and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/password/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Reset a user's password",
                "parameters": [{"description": "Account email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.resetPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.resetPasswordResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/password/strength": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Check password strength",
                "parameters": [{"description": "Candidate password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.passwordStrengthRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.passwordStrengthResponse"}}
                }
            }
        },
        "/config": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Active project configuration",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProjectConfigSpec"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Replace the project configuration",
                "parameters": [{"description": "Complete configuration", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProjectConfigSpec"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProjectConfigSpec"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/config/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Enabled roles",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.rolesResponse"}}}
            }
        },
        "/config/roles/{role}/modules": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Modules enabled for a role",
                "parameters": [{"type": "string", "description": "Role name", "name": "role", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.roleModulesResponse"}}}
            }
        },
        "/config/modules/{module}/access": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Check module access for the caller",
                "parameters": [{"type": "string", "description": "Module name", "name": "module", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.moduleAccessResponse"}}}
            }
        },
        "/config/presets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Available presets",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.presetsResponse"}}}
            }
        },
        "/config/preset": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Switch to a preset",
                "parameters": [{"description": "Preset name", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.selectPresetRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ProjectConfigSpec"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/config/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Validate a project configuration",
                "parameters": [{"description": "Configuration to check", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.ProjectConfigSpec"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ConfigValidation"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "violations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.ConfigValidation": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "violations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.ProjectConfigSpec": {
            "type": "object",
            "properties": {
                "projectName": {"type": "string"},
                "enabledRoles": {"type": "array", "items": {"type": "string"}},
                "enabledModules": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.changePasswordRequest": {
            "type": "object",
            "properties": {"old_password": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.meResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "role_enabled": {"type": "boolean"},
                "modules": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.moduleAccessResponse": {
            "type": "object",
            "properties": {"role": {"type": "string"}, "module": {"type": "string"}, "allowed": {"type": "boolean"}}
        },
        "handler.passwordStrengthRequest": {
            "type": "object",
            "properties": {"password": {"type": "string"}}
        },
        "handler.passwordStrengthResponse": {
            "type": "object",
            "properties": {
                "valid": {"type": "boolean"},
                "rules": {"type": "array", "items": {"type": "string"}},
                "violations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.presetsResponse": {
            "type": "object",
            "properties": {
                "presets": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {"name": {"type": "string"}, "config": {"$ref": "#/definitions/domain.ProjectConfigSpec"}}
                    }
                }
            }
        },
        "handler.refreshRequest": {
            "type": "object",
            "properties": {"refresh_token": {"type": "string"}}
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "businessOwner", "freelancer", "advertiser", "publicUser"]}
            }
        },
        "handler.resetPasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "handler.resetPasswordResponse": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.roleModulesResponse": {
            "type": "object",
            "properties": {
                "role": {"type": "string"},
                "enabled": {"type": "boolean"},
                "modules": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.rolesResponse": {
            "type": "object",
            "properties": {"roles": {"type": "array", "items": {"type": "string"}}}
        },
        "handler.selectPresetRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Directory Access API",
	Description:      "Credentials, tokens and the project capability registry for the listings directory.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
