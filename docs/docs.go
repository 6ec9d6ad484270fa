// Package docs serves the OpenAPI document of the Planit API.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/users/signup": {
            "post": {
                "tags": ["users"],
                "summary": "Register a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.SignupRequest"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["users"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get a user profile",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Comma separated: planner,vendor", "name": "expand", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update a user profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/planners/onboard": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["planners"],
                "summary": "Onboard a planner",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.OnboardPlannerRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/planners/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["planners"],
                "summary": "Get a planner",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["planners"],
                "summary": "Update a planner",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdatePlannerRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/planners/{id}/upload-photo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["planners"],
                "summary": "Upload a planner profile photo",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "JPEG, PNG or WebP up to 5 MB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/vendors/onboard": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["vendors"],
                "summary": "Onboard a vendor",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.OnboardVendorRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/vendors/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["vendors"],
                "summary": "Get a vendor",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["vendors"],
                "summary": "Update a vendor",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateVendorRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/vendors/{id}/upload-license": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["vendors"],
                "summary": "Upload a vendor license",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "PDF, JPEG or PNG up to 10 MB", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "common.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/common.FieldError"}}
            }
        },
        "models.SignupRequest": {
            "type": "object",
            "required": ["firstName", "lastName", "email", "password", "role"],
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "role": {"type": "string", "enum": ["USER", "ADMIN"]}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.UpdateUserRequest": {
            "type": "object",
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "models.OnboardPlannerRequest": {
            "type": "object",
            "required": ["userId", "companyName", "businessAddress"],
            "properties": {
                "userId": {"type": "string"},
                "companyName": {"type": "string"},
                "businessAddress": {"type": "string"},
                "socialMediaLinks": {"type": "string"},
                "portfolioWebsite": {"type": "string"},
                "cacNumber": {"type": "string"}
            }
        },
        "models.UpdatePlannerRequest": {
            "type": "object",
            "properties": {
                "companyName": {"type": "string"},
                "businessAddress": {"type": "string"},
                "cacNumber": {"type": "string"},
                "socialMediaLinks": {"type": "string"},
                "portfolioWebsite": {"type": "string"}
            }
        },
        "models.OnboardVendorRequest": {
            "type": "object",
            "required": ["userId", "companyName", "businessAddress"],
            "properties": {
                "userId": {"type": "string"},
                "companyName": {"type": "string"},
                "businessAddress": {"type": "string"},
                "cacNumber": {"type": "string"},
                "serviceCategories": {"type": "string"},
                "yearsOfExperience": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "models.UpdateVendorRequest": {
            "type": "object",
            "properties": {
                "companyName": {"type": "string"},
                "businessAddress": {"type": "string"},
                "cacNumber": {"type": "string"},
                "serviceCategories": {"type": "string"},
                "yearsOfExperience": {"type": "string"},
                "phone": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Planit API",
	Description:      "Users, event planners and vendors of the Planit marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
