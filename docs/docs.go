// Package docs registra la especificación OpenAPI de la API con swag.
// El handler de Swagger UI la sirve en /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"Bearer": []}],
    "paths": {
        "/api/users/sync": {
            "post": {"tags": ["users"], "summary": "Sincroniza el usuario con el proveedor de identidad",
                "parameters": [{"in": "body", "name": "body", "schema": {"$ref": "#/definitions/dto.SyncUserRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                              "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/users/me": {
            "get": {"tags": ["users"], "summary": "Usuario autenticado",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}}}
        },
        "/api/users/{id}": {
            "get": {"tags": ["users"], "summary": "Usuario por ID (solo el propio)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                              "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/clients": {
            "get": {"tags": ["clients"], "summary": "Lista los clientes",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ClientResponse"}}}}},
            "post": {"tags": ["clients"], "summary": "Crea un cliente",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateClientRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ClientResponse"}},
                              "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/clients/{id}": {
            "get": {"tags": ["clients"], "summary": "Obtiene un cliente",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClientResponse"}}}},
            "put": {"tags": ["clients"], "summary": "Actualiza un cliente (patch)",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true},
                               {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateClientRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClientResponse"}}}},
            "delete": {"tags": ["clients"], "summary": "Elimina un cliente sin facturas",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"},
                              "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/clients/{id}/invoices": {
            "get": {"tags": ["clients"], "summary": "Facturas de un cliente",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.InvoiceResponse"}}}}}
        },
        "/api/settings": {
            "get": {"tags": ["settings"], "summary": "Configuración de facturación",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SettingsResponse"}}}},
            "put": {"tags": ["settings"], "summary": "Guarda la configuración (patch)",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpsertSettingsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SettingsResponse"}}}}
        },
        "/api/invoices": {
            "get": {"tags": ["invoices"], "summary": "Lista las facturas, más recientes primero",
                "parameters": [{"in": "query", "name": "status", "type": "string", "enum": ["draft", "sent", "paid", "overdue"]},
                               {"in": "query", "name": "client_id", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.InvoiceResponse"}}}}},
            "post": {"tags": ["invoices"], "summary": "Crea una factura",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InvoiceRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}},
                              "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                              "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}}}
        },
        "/api/invoices/next-number": {
            "get": {"tags": ["invoices"], "summary": "Número sugerido y valores por defecto",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NextInvoiceResponse"}}}}
        },
        "/api/invoices/status": {
            "patch": {"tags": ["invoices"], "summary": "Cambia el estado de varias facturas",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BulkStatusRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BulkResult"}}}}
        },
        "/api/invoices/bulk-delete": {
            "post": {"tags": ["invoices"], "summary": "Elimina varias facturas",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.IDsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BulkResult"}}}}
        },
        "/api/invoices/{id}": {
            "get": {"tags": ["invoices"], "summary": "Factura con cliente, líneas y gastos",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}}}},
            "put": {"tags": ["invoices"], "summary": "Reemplaza la factura y sus hijos",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true},
                               {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.InvoiceRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}}}},
            "delete": {"tags": ["invoices"], "summary": "Elimina la factura con sus líneas y gastos",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/api/invoices/{id}/status": {
            "patch": {"tags": ["invoices"], "summary": "Cambia el estado de una factura",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true},
                               {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateStatusRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.InvoiceResponse"}}}}
        },
        "/api/invoices/{id}/pdf": {
            "get": {"tags": ["invoices"], "summary": "Descarga la factura en PDF", "produces": ["application/pdf"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/dashboard/stats": {
            "get": {"tags": ["dashboard"], "summary": "Estadísticas de facturación",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardStatsResponse"}}}}
        },
        "/api/files/upload-url": {
            "post": {"tags": ["files"], "summary": "Genera una URL de subida",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UploadURLResponse"}}}}
        },
        "/api/files/url": {
            "get": {"tags": ["files"], "summary": "URL de lectura (null si no existe)",
                "parameters": [{"in": "query", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FileURLResponse"}}}}
        },
        "/api/files": {
            "delete": {"tags": ["files"], "summary": "Elimina un archivo",
                "parameters": [{"in": "query", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
        "dto.IDsRequest": {"type": "object", "properties": {"ids": {"type": "array", "items": {"type": "string"}}}},
        "dto.BulkResult": {"type": "object", "properties": {"affected": {"type": "integer"}}},
        "dto.SyncUserRequest": {"type": "object", "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "image_url": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "subject": {"type": "string"}, "email": {"type": "string"},
            "name": {"type": "string"}, "image_url": {"type": "string"}, "created_at": {"type": "integer"}}},
        "dto.AddressDTO": {"type": "object", "properties": {
            "street_name": {"type": "string"}, "building_name": {"type": "string"},
            "unit_number": {"type": "string"}, "postal_code": {"type": "string"}}},
        "dto.CreateClientRequest": {"type": "object", "required": ["name"], "properties": {
            "name": {"type": "string"}, "email": {"type": "string"},
            "address": {"$ref": "#/definitions/dto.AddressDTO"}, "contact_person": {"type": "string"}}},
        "dto.UpdateClientRequest": {"type": "object", "properties": {
            "name": {"type": "string"}, "email": {"type": "string"},
            "address": {"$ref": "#/definitions/dto.AddressDTO"}, "contact_person": {"type": "string"}}},
        "dto.ClientResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "user_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"},
            "address": {"$ref": "#/definitions/dto.AddressDTO"}, "address_lines": {"type": "array", "items": {"type": "string"}},
            "contact_person": {"type": "string"}, "created_at": {"type": "integer"}, "updated_at": {"type": "integer"}}},
        "dto.SettingsResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "invoice_prefix": {"type": "string"}, "invoice_number_start": {"type": "integer"},
            "due_date_days": {"type": "integer"}, "tax_rate": {"type": "number"}, "payment_instructions": {"type": "string"},
            "rounding_enabled": {"type": "boolean"}, "rounding_increment": {"type": "number"},
            "created_at": {"type": "integer"}, "updated_at": {"type": "integer"}}},
        "dto.UpsertSettingsRequest": {"type": "object", "properties": {
            "invoice_prefix": {"type": "string"}, "invoice_number_start": {"type": "integer"},
            "due_date_days": {"type": "integer"}, "tax_rate": {"type": "number"}, "payment_instructions": {"type": "string"},
            "rounding_enabled": {"type": "boolean"}, "rounding_increment": {"type": "number"}}},
        "dto.NextInvoiceResponse": {"type": "object", "properties": {
            "invoice_number": {"type": "string"}, "issue_date": {"type": "integer"}, "due_date": {"type": "integer"},
            "tax_rate": {"type": "number"}, "rounding_increment": {"type": "number"}, "payment_instructions": {"type": "string"}}},
        "dto.LineItemRequest": {"type": "object", "properties": {
            "description": {"type": "string"}, "quantity": {"type": "number"}, "unit_price": {"type": "number"}}},
        "dto.ClaimRequest": {"type": "object", "properties": {
            "description": {"type": "string"}, "amount": {"type": "number"}, "date": {"type": "integer"}, "attachment_id": {"type": "string"}}},
        "dto.InvoiceRequest": {"type": "object", "required": ["client_id", "invoice_number"], "properties": {
            "client_id": {"type": "string"}, "invoice_number": {"type": "string"},
            "issue_date": {"type": "integer"}, "due_date": {"type": "integer"},
            "status": {"type": "string", "enum": ["draft", "sent", "paid", "overdue"]},
            "tax_rate": {"type": "number"}, "rounding_increment": {"type": "number"}, "rounding_enabled": {"type": "boolean"},
            "notes": {"type": "string"},
            "line_items": {"type": "array", "items": {"$ref": "#/definitions/dto.LineItemRequest"}},
            "claims": {"type": "array", "items": {"$ref": "#/definitions/dto.ClaimRequest"}}}},
        "dto.LineItemResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "description": {"type": "string"}, "quantity": {"type": "number"},
            "unit_price": {"type": "number"}, "total": {"type": "number"}, "order": {"type": "integer"}}},
        "dto.ClaimResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "description": {"type": "string"}, "amount": {"type": "number"},
            "date": {"type": "integer"}, "order": {"type": "integer"}, "attachment_id": {"type": "string"}}},
        "dto.InvoiceResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "user_id": {"type": "string"}, "client_id": {"type": "string"},
            "invoice_number": {"type": "string"}, "issue_date": {"type": "integer"}, "due_date": {"type": "integer"},
            "status": {"type": "string"}, "tax_rate": {"type": "number"}, "subtotal": {"type": "number"},
            "tax": {"type": "number"}, "total": {"type": "number"}, "rounding_adjustment": {"type": "number"},
            "notes": {"type": "string"}, "created_at": {"type": "integer"}, "updated_at": {"type": "integer"},
            "client": {"$ref": "#/definitions/dto.ClientResponse"},
            "line_items": {"type": "array", "items": {"$ref": "#/definitions/dto.LineItemResponse"}},
            "claims": {"type": "array", "items": {"$ref": "#/definitions/dto.ClaimResponse"}}}},
        "dto.UpdateStatusRequest": {"type": "object", "properties": {"status": {"type": "string"}}},
        "dto.BulkStatusRequest": {"type": "object", "properties": {
            "ids": {"type": "array", "items": {"type": "string"}}, "status": {"type": "string"}}},
        "dto.WeeklyRevenueDTO": {"type": "object", "properties": {
            "week_start": {"type": "integer"}, "label": {"type": "string"}, "paid": {"type": "number"}, "total": {"type": "number"}}},
        "dto.DashboardStatsResponse": {"type": "object", "properties": {
            "total_earnings": {"type": "number"}, "total_outstanding": {"type": "number"},
            "total_invoices": {"type": "integer"}, "paid_invoices": {"type": "integer"}, "active_clients": {"type": "integer"},
            "status_counts": {"type": "object", "additionalProperties": {"type": "integer"}},
            "weekly_revenue": {"type": "array", "items": {"$ref": "#/definitions/dto.WeeklyRevenueDTO"}}}},
        "dto.UploadURLResponse": {"type": "object", "properties": {"storage_id": {"type": "string"}, "upload_url": {"type": "string"}}},
        "dto.FileURLResponse": {"type": "object", "properties": {"url": {"type": "string", "x-nullable": true}}}
    }
}`

// SwaggerInfo información exportada de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "InvoiceThing API",
	Description:      "Facturación para freelancers: clientes, facturas con gastos reembolsables, configuración y dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
