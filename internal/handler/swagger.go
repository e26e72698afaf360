package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>blueexport-api Swagger</title>
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
  "info": { "title": "blueexport-api", "version": "v1.0.0" },
  "paths": {
    "/": { "get": { "summary": "Liveness message", "responses": { "200": { "description": "backend is running" } } } },
    "/api/hello": { "get": { "summary": "Greeting", "responses": { "200": { "description": "greeting message" } } } },
    "/api/products": { "get": { "summary": "Static product catalog", "responses": { "200": { "description": "rice and spices lists" } } } },
    "/api/inquiry": {
      "post": {
        "summary": "Submit a purchase inquiry",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["product_type","quantity","destination_country"],"properties":{"name":{"type":"string","nullable":true},"email":{"type":"string","format":"email","nullable":true},"phone":{"type":"string","nullable":true},"product_type":{"type":"string"},"quantity":{"type":"string"},"destination_country":{"type":"string"},"message":{"type":"string","maxLength":5000,"nullable":true}}}}}},
        "responses": { "200": { "description": "stored, returns id" }, "422": { "description": "validation failed" }, "500": { "description": "storage failure" } }
      }
    },
    "/api/contact": {
      "post": {
        "summary": "Submit a contact message",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","message"],"properties":{"name":{"type":"string"},"email":{"type":"string","format":"email"},"phone":{"type":"string","nullable":true},"subject":{"type":"string","nullable":true},"message":{"type":"string","maxLength":5000}}}}}},
        "responses": { "200": { "description": "stored, returns id" }, "422": { "description": "validation failed" }, "500": { "description": "storage failure" } }
      }
    },
    "/test": { "get": { "summary": "Backend and database diagnostics", "responses": { "200": { "description": "diagnostic report" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition format" } } } }
  }
}`
