// Package docs Swagger文档
// 由 swag init -g cmd/api/main.go 生成的结构,路由注解见 internal/interface/http/handler
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
        "/api/v1/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "搜索图书",
                "parameters": [
                    {"type": "string", "description": "书名包含", "name": "title", "in": "query"},
                    {"type": "string", "description": "作者包含", "name": "author", "in": "query"},
                    {"type": "string", "description": "类别包含", "name": "genre", "in": "query"},
                    {"type": "boolean", "description": "区分大小写", "name": "case_sensitive", "in": "query"},
                    {"enum": ["available", "checked_out", "unknown"], "type": "string", "description": "借阅状态", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "添加图书",
                "parameters": [
                    {"description": "图书列表", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddBooksRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/books/{index}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书详情",
                "parameters": [
                    {"type": "integer", "description": "目录位置(从0开始)", "name": "index", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "更新图书",
                "parameters": [
                    {"type": "integer", "description": "目录位置(从0开始)", "name": "index", "in": "path", "required": true},
                    {"description": "更新内容", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBookRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/statistics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["报表"],
                "summary": "目录统计",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/reports/summaries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["报表"],
                "summary": "图书摘要",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/reports/analysis": {
            "get": {
                "produces": ["application/json"],
                "tags": ["报表"],
                "summary": "目录分析",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/reports/genres": {
            "get": {
                "produces": ["application/json"],
                "tags": ["报表"],
                "summary": "按类别分组",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/api/v1/reports/titles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["报表"],
                "summary": "书名列表",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        }
    },
    "definitions": {
        "dto.AvailabilityInput": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "available"}}
        },
        "dto.BookInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Dune"},
                "author": {"type": "string", "example": "Frank Herbert"},
                "genre": {"type": "string", "example": "Science Fiction"},
                "year": {"type": "integer", "example": 1965},
                "availability": {"$ref": "#/definitions/dto.AvailabilityInput"}
            }
        },
        "dto.AddBooksRequest": {
            "type": "object",
            "required": ["books"],
            "properties": {
                "books": {"type": "array", "items": {"$ref": "#/definitions/dto.BookInput"}}
            }
        },
        "dto.UpdateBookRequest": {
            "type": "object",
            "required": ["updates"],
            "properties": {
                "updates": {"type": "object", "additionalProperties": true}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Library Catalog API",
	Description:      "图书目录服务:搜索、添加、更新、统计与报表",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
