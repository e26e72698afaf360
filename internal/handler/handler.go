package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blueexport/blueexport/backend/go-services/internal/catalog"
	"github.com/blueexport/blueexport/backend/go-services/internal/diagnostics"
	"github.com/blueexport/blueexport/backend/go-services/internal/forms"
	"github.com/blueexport/blueexport/backend/go-services/internal/store"
	"github.com/blueexport/blueexport/backend/go-services/pkg/logger"
)

// Handler serves the public API. All dependencies are injected; the handler
// keeps no state between requests.
type Handler struct {
	forms *forms.Service
	diag  *diagnostics.Checker
}

func NewHandler(svc *forms.Service, diag *diagnostics.Checker) *Handler {
	return &Handler{forms: svc, diag: diag}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })
	r.GET("/test", h.Diagnostics)

	api := r.Group("/api")
	api.GET("/hello", h.Hello)
	api.GET("/products", h.Products)
	api.POST("/inquiry", h.submit(forms.KindInquiry))
	api.POST("/contact", h.submit(forms.KindContact))
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Blue Export backend is running"})
}

// Hello handles GET /api/hello
func (h *Handler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// Products handles GET /api/products. Query parameters are ignored.
func (h *Handler) Products(c *gin.Context) {
	cat, err := catalog.Load()
	if err != nil {
		logger.Errorf("catalog load failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Diagnostics handles GET /test. It always answers 200; failures are
// described in the payload.
func (h *Handler) Diagnostics(c *gin.Context) {
	c.JSON(http.StatusOK, h.diag.Run(c.Request.Context()))
}

// submit validates the body for kind and stores it. Validation failures never
// reach the store.
func (h *Handler) submit(kind forms.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
			return
		}

		f, err := forms.Decode(kind, body)
		if err != nil {
			var verr *forms.ValidationError
			if errors.As(err, &verr) {
				h.forms.Rejected(kind, verr)
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := h.forms.Submit(c.Request.Context(), f)
		if err != nil {
			resp := gin.H{"error": "failed to store " + kind.String()}
			var pe *store.PersistenceError
			if errors.As(err, &pe) {
				resp["detail"] = pe.Short()
			}
			c.JSON(http.StatusInternalServerError, resp)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id})
	}
}
