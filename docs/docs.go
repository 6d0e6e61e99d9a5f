// Package docs holds the Swagger 2.0 document served at /openapi.json.
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
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/controllers.HealthResponse"}}
                }
            }
        },
        "/db": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Database info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/database.Info"}}
                }
            }
        },
        "/v1/users/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [{"$ref": "#/parameters/userId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserResource"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/devices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Devices"],
                "summary": "List devices",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"type": "integer", "description": "1 to 200, default 50", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListDevicesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Devices"],
                "summary": "Pair device",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"description": "Pairing request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.PairDeviceInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.DeviceResource"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/devices/{device_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Devices"],
                "summary": "Get device",
                "parameters": [{"$ref": "#/parameters/userId"}, {"$ref": "#/parameters/deviceId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeviceResource"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Devices"],
                "summary": "Update device",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"$ref": "#/parameters/deviceId"},
                    {"$ref": "#/parameters/updateMask"},
                    {"description": "Candidate values", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.DevicePayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeviceResource"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/devices/{device_id}:checkFirmware": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Devices"],
                "summary": "Check firmware",
                "parameters": [{"$ref": "#/parameters/userId"}, {"$ref": "#/parameters/deviceId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FirmwareInfo"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/devices/{device_id}/breadcrumbs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Breadcrumbs"],
                "summary": "List breadcrumbs",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"$ref": "#/parameters/deviceId"},
                    {"type": "integer", "description": "1 to 5000, default 1000", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListBreadcrumbsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Breadcrumbs"],
                "summary": "Create breadcrumb",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"$ref": "#/parameters/deviceId"},
                    {"description": "Breadcrumb", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateBreadcrumbRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.BreadcrumbResource"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/devices/{device_id}/breadcrumbs:batchCreate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Breadcrumbs"],
                "summary": "Batch create breadcrumbs",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"$ref": "#/parameters/deviceId"},
                    {"description": "Breadcrumbs", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.BatchCreateBreadcrumbsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BatchCreateBreadcrumbsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/checkIns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["CheckIns"],
                "summary": "List check-ins",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"type": "integer", "description": "clamped into 1 to 200, default 50", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListCheckInsResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["CheckIns"],
                "summary": "Create check-in",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"description": "Check-in", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateCheckInRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CheckInResource"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/familyMembers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Family"],
                "summary": "List family members",
                "parameters": [{"$ref": "#/parameters/userId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListFamilyMembersResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Family"],
                "summary": "Create family member",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"description": "Family member", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.FamilyMemberInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.FamilyMemberResource"}}
                }
            }
        },
        "/v1/users/{user_id}/familyMembers/{member_id}": {
            "delete": {
                "tags": ["Family"],
                "summary": "Delete family member",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"type": "string", "description": "Family member ID", "name": "member_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Get settings",
                "parameters": [{"$ref": "#/parameters/userId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SettingsResource"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Update settings",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"$ref": "#/parameters/updateMask"},
                    {"description": "Candidate values", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SettingsPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SettingsResource"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/v1/users/{user_id}/sos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["SOS"],
                "summary": "Get SOS status",
                "parameters": [{"$ref": "#/parameters/userId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SOSResource"}}
                }
            }
        },
        "/v1/users/{user_id}/sos:activate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["SOS"],
                "summary": "Activate SOS",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"description": "Message and location", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/services.ActivateSOSInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SOSResource"}}
                }
            }
        },
        "/v1/users/{user_id}/sos:cancel": {
            "post": {
                "produces": ["application/json"],
                "tags": ["SOS"],
                "summary": "Cancel SOS",
                "parameters": [{"$ref": "#/parameters/userId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SOSResource"}}
                }
            }
        },
        "/v1/users/{user_id}/messages": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "List messages",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"type": "integer", "description": "clamped into 1 to 200, default 50", "name": "pageSize", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListMessagesResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Messages"],
                "summary": "Create message",
                "parameters": [
                    {"$ref": "#/parameters/userId"},
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.MessageInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.MessageResource"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "parameters": {
        "userId": {"type": "string", "description": "User ID", "name": "user_id", "in": "path", "required": true},
        "deviceId": {"type": "string", "description": "Device ID", "name": "device_id", "in": "path", "required": true},
        "updateMask": {"type": "string", "description": "Comma separated field names", "name": "updateMask", "in": "query"}
    },
    "definitions": {
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 102000},
                "message": {"type": "string", "example": "Device not found"}
            }
        },
        "controllers.HealthResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "ok"}}
        },
        "database.Info": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "backend": {"type": "string"},
                "driver": {"type": "string"},
                "ok": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "lat": {"type": "number", "example": 47.6062},
                "lng": {"type": "number", "example": -122.3321},
                "accuracyMeters": {"type": "number", "example": 5}
            }
        },
        "models.LatLng": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number", "example": 10.5},
                "longitude": {"type": "number", "example": 20.25}
            }
        },
        "models.UserResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "displayName": {"type": "string"},
                "createTime": {"type": "string", "format": "date-time"}
            }
        },
        "models.DeviceResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "displayName": {"type": "string"},
                "batteryPercent": {"type": "integer"},
                "solar": {"type": "boolean"},
                "connectionState": {"type": "string", "enum": ["ONLINE", "OFFLINE"]},
                "firmwareVersion": {"type": "string"},
                "lastSeenTime": {"type": "string", "format": "date-time"},
                "location": {"$ref": "#/definitions/models.Location"},
                "pairedAt": {"type": "string", "format": "date-time"},
                "createTime": {"type": "string", "format": "date-time"},
                "updateTime": {"type": "string", "format": "date-time"}
            }
        },
        "models.DevicePayload": {
            "type": "object",
            "properties": {
                "batteryPercent": {"type": "integer", "minimum": 0, "maximum": 100},
                "solar": {"type": "boolean"},
                "connectionState": {"type": "string", "enum": ["ONLINE", "OFFLINE"]},
                "firmwareVersion": {"type": "string"},
                "lastSeenTime": {"type": "string", "format": "date-time"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "services.PairDeviceInput": {
            "type": "object",
            "properties": {
                "pairingCode": {"type": "string", "example": "ABCD-1234"},
                "device": {"$ref": "#/definitions/models.DevicePayload"}
            }
        },
        "models.FirmwareInfo": {
            "type": "object",
            "properties": {
                "currentVersion": {"type": "string"},
                "latestVersion": {"type": "string"},
                "updateAvailable": {"type": "boolean"},
                "releaseNotes": {"type": "string"}
            }
        },
        "controllers.ListDevicesResponse": {
            "type": "object",
            "properties": {
                "devices": {"type": "array", "items": {"$ref": "#/definitions/models.DeviceResource"}},
                "nextPageToken": {"type": "string"}
            }
        },
        "models.BreadcrumbInput": {
            "type": "object",
            "required": ["position"],
            "properties": {
                "position": {"$ref": "#/definitions/models.LatLng"},
                "accuracyMeters": {"type": "number"},
                "recordTime": {"type": "string", "format": "date-time"}
            }
        },
        "models.BreadcrumbResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "position": {"$ref": "#/definitions/models.LatLng"},
                "accuracyMeters": {"type": "number"},
                "recordTime": {"type": "string", "format": "date-time"},
                "createTime": {"type": "string", "format": "date-time"}
            }
        },
        "controllers.CreateBreadcrumbRequest": {
            "type": "object",
            "properties": {"breadcrumb": {"$ref": "#/definitions/models.BreadcrumbInput"}}
        },
        "controllers.BatchCreateBreadcrumbsRequest": {
            "type": "object",
            "properties": {"breadcrumbs": {"type": "array", "maxItems": 5000, "items": {"$ref": "#/definitions/models.BreadcrumbInput"}}}
        },
        "controllers.BatchCreateBreadcrumbsResponse": {
            "type": "object",
            "properties": {"createdCount": {"type": "integer"}}
        },
        "controllers.ListBreadcrumbsResponse": {
            "type": "object",
            "properties": {
                "breadcrumbs": {"type": "array", "items": {"$ref": "#/definitions/models.BreadcrumbResource"}},
                "nextPageToken": {"type": "string"}
            }
        },
        "services.CheckInInput": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "example": "ok"},
                "message": {"type": "string"},
                "deviceId": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "controllers.CreateCheckInRequest": {
            "type": "object",
            "properties": {"checkIn": {"$ref": "#/definitions/services.CheckInInput"}}
        },
        "models.CheckInResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "message": {"type": "string"},
                "deviceId": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"},
                "createTime": {"type": "string", "format": "date-time"}
            }
        },
        "controllers.ListCheckInsResponse": {
            "type": "object",
            "properties": {
                "checkIns": {"type": "array", "items": {"$ref": "#/definitions/models.CheckInResource"}},
                "nextPageToken": {"type": "string"}
            }
        },
        "services.FamilyMemberInput": {
            "type": "object",
            "required": ["displayName"],
            "properties": {
                "displayName": {"type": "string", "example": "Alice"},
                "status": {"type": "string", "example": "SAFE"},
                "lastSeenTime": {"type": "string", "format": "date-time"}
            }
        },
        "models.FamilyMemberResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "displayName": {"type": "string"},
                "status": {"type": "string"},
                "lastSeenTime": {"type": "string", "format": "date-time"},
                "createTime": {"type": "string", "format": "date-time"}
            }
        },
        "controllers.ListFamilyMembersResponse": {
            "type": "object",
            "properties": {
                "familyMembers": {"type": "array", "items": {"$ref": "#/definitions/models.FamilyMemberResource"}}
            }
        },
        "models.SettingsPayload": {
            "type": "object",
            "properties": {
                "autoAlerts": {"type": "boolean"},
                "notifyContacts": {"type": "boolean"},
                "sosAutoCall": {"type": "boolean"},
                "geofenceRadiusMeters": {"type": "integer", "minimum": 0}
            }
        },
        "models.SettingsResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "autoAlerts": {"type": "boolean"},
                "notifyContacts": {"type": "boolean"},
                "sosAutoCall": {"type": "boolean"},
                "geofenceRadiusMeters": {"type": "integer"},
                "updateTime": {"type": "string", "format": "date-time"}
            }
        },
        "services.ActivateSOSInput": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.SOSResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "active": {"type": "boolean"},
                "startTime": {"type": "string", "format": "date-time"},
                "cancelTime": {"type": "string", "format": "date-time"},
                "lastKnownLocation": {"$ref": "#/definitions/models.Location"}
            }
        },
        "services.MessageInput": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"},
                "deviceId": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.MessageResource": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "text": {"type": "string"},
                "deviceId": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"},
                "createTime": {"type": "string", "format": "date-time"}
            }
        },
        "controllers.ListMessagesResponse": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/models.MessageResource"}},
                "nextPageToken": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TrailGuard API",
	Description:      "Trail safety backend: devices, breadcrumbs, check-ins, family, settings, SOS and messages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
