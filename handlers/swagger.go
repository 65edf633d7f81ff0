package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the poll service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>rankchoice - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "rankchoice", "version": "v0.1.0" },
  "components": {
    "schemas": {
      "PollOption": { "type": "object", "properties": { "name": {"type":"string"}, "description": {"type":"string"} } },
      "PollRequest": { "type": "object", "properties": {
        "name": {"type":"string"}, "description": {"type":"string"}, "ownerId": {"type":"string","format":"uuid"},
        "startTime": {"type":"string","format":"date-time"}, "endTime": {"type":"string","format":"date-time"},
        "options": {"type":"array","items":{"$ref":"#/components/schemas/PollOption"}} } },
      "Poll": { "allOf": [ {"$ref":"#/components/schemas/PollRequest"}, { "type": "object", "properties": {
        "id": {"type":"string","format":"uuid"}, "status": {"type":"string","enum":["Scheduled","Active","Closed"]} } } ] },
      "VoterSelection": { "type": "object", "properties": { "optionName": {"type":"string"}, "rank": {"type":"integer"} } },
      "Voter": { "type": "object", "properties": { "id": {"type":"string","format":"uuid"}, "pollId": {"type":"string","format":"uuid"},
        "selections": {"type":"array","items":{"$ref":"#/components/schemas/VoterSelection"}} } }
    }
  },
  "paths": {
    "/api/polls": {
      "post": { "summary": "Create a poll", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/PollRequest"} } } },
        "responses": { "201": { "description": "id of the new poll" }, "400": { "description": "invalid poll" }, "500": { "description": "store failure" } } }
    },
    "/api/polls/{id}": {
      "get": { "summary": "Get a poll", "responses": { "200": { "description": "poll", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Poll"} } } }, "400": { "description": "malformed id" }, "404": { "description": "not found" } } },
      "head": { "summary": "Check that a poll exists", "responses": { "200": { "description": "exists" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a scheduled poll", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/PollRequest"} } } },
        "responses": { "200": { "description": "id of the poll" }, "400": { "description": "invalid poll" }, "403": { "description": "poll already started or closed" }, "404": { "description": "not found" } } }
    },
    "/api/polls/{id}/archive": {
      "get": { "summary": "Download the archived snapshot of a closed poll", "responses": { "302": { "description": "redirect to a temporary download link" }, "404": { "description": "poll not closed or archive storage not configured" } } }
    },
    "/api/polls/{id}/voters": {
      "post": { "summary": "Register a voter for a poll", "responses": { "201": { "description": "id of the new voter" }, "400": { "description": "malformed poll id" } } }
    },
    "/api/voters/{id}": {
      "get": { "summary": "Get a voter", "responses": { "200": { "description": "voter", "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Voter"} } } }, "404": { "description": "not found" } } }
    },
    "/api/voters/{id}/selections": {
      "put": { "summary": "Replace a voter's rankings", "requestBody": { "content": { "application/json": { "schema": {"type":"array","items":{"$ref":"#/components/schemas/VoterSelection"}} } } },
        "responses": { "200": { "description": "id of the voter" }, "400": { "description": "ranks are not a permutation of 1..N" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
