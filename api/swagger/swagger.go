package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Records API",
        "description": "Student roster, marks, attendance and transcript service",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Admin credential setup and login"},
        {"name": "Students", "description": "Student roster management"},
        {"name": "Results", "description": "Semester marks and transcripts"},
        {"name": "Attendance", "description": "Daily attendance by grade"},
        {"name": "Import/Export", "description": "CSV import, export and templates"},
        {"name": "Insights", "description": "Generated performance narratives"},
        {"name": "Dashboard", "description": "School-wide statistics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/v1/auth/status": {
            "get": {
                "tags": ["Auth"],
                "summary": "Report whether initial setup is required",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/setup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create the admin credential (first run only)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Credential already exists"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a JWT",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "grade", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failure"}
                }
            }
        },
        "/api/v1/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/students/{id}/results/{semester}": {
            "get": {
                "tags": ["Results"],
                "summary": "Semester result view",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Results"],
                "summary": "Save semester marks",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveMarksRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid marks"}
                }
            }
        },
        "/api/v1/students/{id}/transcript": {
            "get": {
                "tags": ["Results"],
                "summary": "Annual weighted transcript",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/students/{id}/report-card": {
            "get": {
                "tags": ["Import/Export"],
                "summary": "Report card PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "type": "integer", "description": "0 for annual transcript, 1 or 2 for a semester"}
                ],
                "responses": {
                    "200": {"description": "PDF bytes"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/students/{id}/attendance/summary": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance summary for a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/students/{id}/insight": {
            "post": {
                "tags": ["Insights"],
                "summary": "Generate a performance narrative for a semester result",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Student or result not found"}
                }
            }
        },
        "/api/v1/students/import": {
            "post": {
                "tags": ["Import/Export"],
                "summary": "Import students from CSV files",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "files", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Import summary", "schema": {"$ref": "#/definitions/ImportSummary"}}
                }
            }
        },
        "/api/v1/students/export": {
            "get": {
                "tags": ["Import/Export"],
                "summary": "Export full roster as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "CSV bytes"}
                }
            }
        },
        "/api/v1/students/template": {
            "get": {
                "tags": ["Import/Export"],
                "summary": "Download an import template",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "kind", "in": "query", "type": "string", "enum": ["bio", "sem1", "sem2"]}
                ],
                "responses": {
                    "200": {"description": "CSV bytes"},
                    "400": {"description": "Unknown kind"}
                }
            }
        },
        "/api/v1/attendance/{grade}/{date}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance sheet for a grade on a date",
                "parameters": [
                    {"name": "grade", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "path", "required": true, "type": "string", "description": "YYYY-MM-DD"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad grade or date"}
                }
            },
            "put": {
                "tags": ["Attendance"],
                "summary": "Mark attendance for a grade on a date",
                "parameters": [
                    {"name": "grade", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid status"}
                }
            }
        },
        "/api/v1/attendance/{grade}/{date}/mark-all-present": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Mark every student in the grade present",
                "parameters": [
                    {"name": "grade", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "School-wide statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Generated school performance narrative",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "SetupRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "StudentRequest": {
            "type": "object",
            "properties": {
                "serial_no": {"type": "string"},
                "registration_no": {"type": "string"},
                "name": {"type": "string"},
                "father_name": {"type": "string"},
                "gender": {"type": "string", "enum": ["Male", "Female", "Other"]},
                "grade": {"type": "string", "enum": ["1", "2", "3", "4", "5"]},
                "dob": {"type": "string"},
                "form_b": {"type": "string"},
                "contact": {"type": "string"}
            },
            "required": ["name"]
        },
        "SaveMarksRequest": {
            "type": "object",
            "properties": {
                "marks": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "remarks": {"type": "string"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "properties": {
                "statuses": {
                    "type": "object",
                    "additionalProperties": {"type": "string", "enum": ["P", "A", "L"]}
                }
            },
            "required": ["statuses"]
        },
        "ImportSummary": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "updated": {"type": "integer"},
                "skipped": {"type": "integer"},
                "errors": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
