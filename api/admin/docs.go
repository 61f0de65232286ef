// Package admin holds the OpenAPI document for the admin server, registered
// with swag so /swagger/ can serve it. Regenerate with:
//
//	swag init -g internal/admin/web/router.go -o api/admin --parseDependency
package admin

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "AussieBroadWAN Team",
            "url": "https://github.com/aussiebroadwan/cmsadmin"
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
        "/": {
            "get": {
                "description": "HTML landing page. Publishes window.__RUNTIME_CONFIG__ for the console.",
                "produces": ["text/html"],
                "tags": ["Pages"],
                "summary": "Landing page",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/api/inventory/status": {
            "get": {
                "description": "Outcome of the most recent background inventory sync.",
                "produces": ["application/json"],
                "tags": ["Inventory"],
                "summary": "Inventory sync status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/worker.SyncStatus"}}
                }
            }
        },
        "/api/runtime-config": {
            "get": {
                "description": "The API base URLs the console should talk to, resolved when the server started.",
                "produces": ["application/json"],
                "tags": ["Config"],
                "summary": "Runtime configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/runtimeconfig.Config"}}
                }
            }
        },
        "/api/theme.css": {
            "get": {
                "description": "CSS custom properties for the light (:root) and dark (.dark) palettes.\nWith no seed the server's configured theme is returned.",
                "produces": ["text/css"],
                "tags": ["Config"],
                "summary": "Theme stylesheet",
                "parameters": [
                    {"type": "string", "description": "seed colour, e.g. #6d28d9", "name": "seed", "in": "query"},
                    {"type": "string", "description": "theme name", "name": "name", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/api/vitals": {
            "post": {
                "description": "Logs one Core Web Vitals measurement reported by the console.",
                "consumes": ["application/json"],
                "tags": ["Telemetry"],
                "summary": "Record a Web Vitals beacon",
                "parameters": [
                    {"description": "measurement", "name": "vital", "in": "body", "required": true, "schema": {"$ref": "#/definitions/web.Vital"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/livez": {
            "get": {
                "description": "Liveness probe endpoint returning basic service health status, uptime, and version information\nThis endpoint always returns 200 OK if the service is running",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/web.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Readiness probe checking the session store and both backend APIs",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/web.HealthResponse"}},
                    "503": {"description": "status, uptime, version, checks - service not ready", "schema": {"$ref": "#/definitions/web.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "httpx.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "runtimeconfig.Config": {
            "type": "object",
            "properties": {
                "cmsApiUrl": {"type": "string"},
                "platformApiUrl": {"type": "string"}
            }
        },
        "web.HealthChecks": {
            "type": "object",
            "properties": {
                "cms": {"type": "string"},
                "platform": {"type": "string"},
                "store": {"type": "string"}
            }
        },
        "web.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/web.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "web.Vital": {
            "type": "object",
            "properties": {
                "delta": {"type": "number"},
                "id": {"type": "string", "example": "v4-1700000000000-123"},
                "name": {"type": "string", "example": "LCP"},
                "navigationType": {"type": "string"},
                "rating": {"type": "string", "example": "good"},
                "value": {"type": "number", "example": 1834.5}
            }
        },
        "worker.SyncStatus": {
            "type": "object",
            "properties": {
                "deleted": {"type": "integer"},
                "last_error": {"type": "string"},
                "last_run": {"type": "string"},
                "low_stock": {"type": "array", "items": {"type": "string"}},
                "runs": {"type": "integer"},
                "skipped": {"type": "integer"},
                "updated": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "CMS Admin Server API",
	Description:      "Companion server for the CMS admin console. Serves the landing page with\nruntime configuration injected, the generated theme, web vitals intake and\nhealth probes for the CMS and platform backends.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
