package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Resources API",
        "description": "Academic resource sharing, moderation and study tools",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Content", "description": "Approved resources and submissions"},
        {"name": "Moderation", "description": "Submission review queue"},
        {"name": "Profile", "description": "User profile and semester lifecycle"},
        {"name": "Quiz", "description": "Quiz and question paper generation"},
        {"name": "Planner", "description": "Personal notes and todos"}
    ],
    "paths": {
        "/content/{kind}": {
            "get": {
                "tags": ["Content"],
                "summary": "List approved content for a semester, or search all semesters",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["notes", "videos", "question-papers"]},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/content/{kind}/submissions": {
            "post": {
                "tags": ["Content"],
                "summary": "Submit a resource for moderation",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitContentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/moderation/{kind}/submissions": {
            "get": {
                "tags": ["Moderation"],
                "summary": "List pending submissions",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/moderation/{kind}/submissions/{id}/approve": {
            "post": {
                "tags": ["Moderation"],
                "summary": "Approve a submission and publish its content",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already moderated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/moderation/{kind}/submissions/{id}/reject": {
            "post": {
                "tags": ["Moderation"],
                "summary": "Reject a submission",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already moderated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/moderation/{kind}/submissions/{id}/repair": {
            "post": {
                "tags": ["Moderation"],
                "summary": "Reconcile a submission left pending by an interrupted approval",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No promoted content found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get the caller's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Profile"],
                "summary": "Update the caller's profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profile/semester/advance": {
            "post": {
                "tags": ["Profile"],
                "summary": "Advance the caller's semester if a rollover is due",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profile/admin-request": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get the caller's latest admin request status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Profile"],
                "summary": "Request moderator rights",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quiz/generate": {
            "post": {
                "tags": ["Quiz"],
                "summary": "Generate multiple-choice practice questions",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateQuizRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quiz/paper": {
            "post": {
                "tags": ["Quiz"],
                "summary": "Generate an exam-style question paper",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePaperRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/quiz/paper/export": {
            "post": {
                "tags": ["Quiz"],
                "summary": "Generate a question paper and download it as a PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GeneratePaperRequest"}}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/planner/notes": {
            "get": {
                "tags": ["Planner"],
                "summary": "List personal notes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Planner"],
                "summary": "Create a personal note",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PersonalNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/todos": {
            "get": {
                "tags": ["Planner"],
                "summary": "List tasks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Planner"],
                "summary": "Create a task",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TodoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitContentRequest": {
            "type": "object",
            "required": ["name", "url", "semester"],
            "properties": {
                "name": {"type": "string"},
                "url": {"type": "string"},
                "semester": {"type": "string", "enum": ["1", "2", "3", "4", "5", "6", "7", "8"]},
                "subject": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "UpdateProfileRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "enrollmentNumber": {"type": "string"},
                "semester": {"type": "string"},
                "branch": {"type": "string"},
                "profileImageURL": {"type": "string"}
            }
        },
        "GenerateQuizRequest": {
            "type": "object",
            "required": ["subject", "count", "difficulty"],
            "properties": {
                "subject": {"type": "string"},
                "topic": {"type": "string"},
                "count": {"type": "integer", "minimum": 1, "maximum": 25},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]}
            }
        },
        "GeneratePaperRequest": {
            "type": "object",
            "required": ["subject", "count", "difficulty"],
            "properties": {
                "subject": {"type": "string"},
                "topic": {"type": "string"},
                "count": {"type": "integer"},
                "difficulty": {"type": "string"},
                "referenceText": {"type": "string"}
            }
        },
        "PersonalNoteRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "subject": {"type": "string"},
                "semester": {"type": "string"}
            }
        },
        "TodoRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "isCompleted": {"type": "boolean"},
                "dueDate": {"type": "string", "format": "date-time"}
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
