package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Registro Academico API",
        "description": "Administration API for students, professors, subjects and enrollments",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Credential registration and login"},
        {"name": "Students", "description": "Student records"},
        {"name": "Professors", "description": "Professor records"},
        {"name": "Subjects", "description": "Subject catalog"},
        {"name": "Enrollments", "description": "Student ↔ subject assignments"}
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
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register credential",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Incorrect password", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate email or matricula", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "patch": {
                "tags": ["Students"],
                "summary": "Partially update student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Student still enrolled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/estudiantes": {
            "get": {
                "tags": ["Students"],
                "summary": "List students (reduced roster)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/estudiantes/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export roster as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"}
                }
            }
        },
        "/estudiantes/{id}/materias": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List a student's enrolled subjects",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Assign subject to student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already assigned", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/estudiantes/{id}/materias/{materia_id}": {
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Unassign subject from student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "materia_id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Enrollment not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profesores": {
            "get": {
                "tags": ["Professors"],
                "summary": "List professors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Professors"],
                "summary": "Create professor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProfessorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate cedula", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/profesores/{id}": {
            "patch": {
                "tags": ["Professors"],
                "summary": "Partially update professor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfessorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Professors"],
                "summary": "Delete professor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Professor still owns subjects", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materias": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects with owning professor",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Professor not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/materias/{id}": {
            "patch": {
                "tags": ["Subjects"],
                "summary": "Partially update subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSubjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Subject still has enrollments", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre_completo": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "email": {"type": "string"},
                "telefono": {"type": "string"},
                "matricula": {"type": "string"},
                "carrera": {"type": "string"},
                "anio_semestre": {"type": "string"},
                "promedio": {"type": "number"},
                "estado": {"type": "string"},
                "fecha_ingreso": {"type": "string"},
                "fecha_egreso": {"type": "string"},
                "direccion": {"type": "string"}
            }
        },
        "Professor": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombres": {"type": "string"},
                "cedula": {"type": "string"}
            }
        },
        "SubjectDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "creditos": {"type": "integer"},
                "horas": {"type": "integer"},
                "profesor_id": {"type": "integer"},
                "profesor_nombre": {"type": "string"},
                "profesor_cedula": {"type": "string"}
            }
        },
        "EnrolledSubject": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "nombre": {"type": "string"},
                "creditos": {"type": "integer"},
                "horas": {"type": "integer"},
                "profesor_nombre": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "nombre_completo": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "email": {"type": "string"},
                "telefono": {"type": "string"},
                "matricula": {"type": "string"},
                "carrera": {"type": "string"},
                "anio_semestre": {"type": "string"},
                "promedio": {"type": "number"},
                "estado": {"type": "string"},
                "fecha_ingreso": {"type": "string"},
                "fecha_egreso": {"type": "string"},
                "direccion": {"type": "string"}
            },
            "required": ["nombre_completo", "fecha_nacimiento", "email", "matricula", "carrera", "anio_semestre", "fecha_ingreso"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "nombre_completo": {"type": "string"},
                "fecha_nacimiento": {"type": "string"},
                "email": {"type": "string"},
                "telefono": {"type": "string"},
                "matricula": {"type": "string"},
                "carrera": {"type": "string"},
                "anio_semestre": {"type": "string"},
                "promedio": {"type": "number"},
                "estado": {"type": "string"},
                "fecha_ingreso": {"type": "string"},
                "fecha_egreso": {"type": "string"},
                "direccion": {"type": "string"}
            }
        },
        "CreateProfessorRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "cedula": {"type": "string"}
            },
            "required": ["nombres", "cedula"]
        },
        "UpdateProfessorRequest": {
            "type": "object",
            "properties": {
                "nombres": {"type": "string"},
                "cedula": {"type": "string"}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "creditos": {"type": "integer"},
                "horas": {"type": "integer"},
                "profesor_id": {"type": "integer"}
            },
            "required": ["nombre", "creditos", "horas"]
        },
        "UpdateSubjectRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "creditos": {"type": "integer"},
                "horas": {"type": "integer"},
                "profesor_id": {"type": "integer"}
            }
        },
        "AssignSubjectRequest": {
            "type": "object",
            "properties": {
                "materia_id": {"type": "integer"}
            },
            "required": ["materia_id"]
        },
        "DeleteAck": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "id": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
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
