// Package docs регистрирует OpenAPI-описание API для gin-swagger (/swagger/*any).
// Поддерживается вручную вместе с аннотациями хендлеров.
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
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Вход по email и паролю",
                "parameters": [
                    {"description": "Учётные данные", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Пользователь заблокирован"}
                }
            }
        },
        "/api/v1/metadata": {
            "get": {
                "produces": ["application/json"],
                "tags": ["metadata"],
                "summary": "Превью ссылки",
                "parameters": [
                    {"type": "string", "description": "Адрес страницы", "name": "url", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MetadataResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MetadataResponse"}}
                }
            }
        },
        "/api/v1/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Последние уведомления пользователя",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/v1/notifications/unread-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Общее число непрочитанных уведомлений",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/notifications/read-all": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Отметить все уведомления прочитанными",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/notifications/{id}/read": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Отметить уведомление прочитанным",
                "parameters": [
                    {"type": "string", "description": "ID уведомления", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/admin/notifications": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Создать уведомление (админ)",
                "parameters": [
                    {"description": "Уведомление", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateNotificationRequest"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/users/me/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Профиль текущего пользователя",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Заменить bio текущего пользователя",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}}
        },
        "dto.MetadataResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "data": {
                    "type": "object",
                    "properties": {
                        "image": {"type": "string"},
                        "title": {"type": "string"},
                        "description": {"type": "string"},
                        "url": {"type": "string"}
                    }
                }
            }
        },
        "dto.CreateNotificationRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "type": {"type": "string", "enum": ["chat", "proposal", "project", "system"]},
                "title": {"type": "string"},
                "message": {"type": "string"},
                "data": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Freelance marketplace API",
	Description:      "Уведомления, профили и служебные эндпоинты фриланс-биржи.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
