package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Harsh-BH/jobtracker/internal/domain"
)

// writeError maps a use case error onto a status code and JSON error body.
func writeError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, domain.ErrAnalysisNotConfigured):
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrAnalysisNotConfigured.Error()})
	case errors.Is(err, domain.ErrAnalysisQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrAnalysisQuotaExceeded.Error()})
	case errors.Is(err, domain.ErrAnalysisRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": domain.ErrAnalysisRateLimited.Error()})
	case errors.Is(err, domain.ErrAnalysisFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.ErrAnalysisFailed.Error()})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindJSON decodes the request body into obj. A status outside the enumeration
// surfaces as a field error; any other decode failure is reported as a bad body.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return false
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
			"field": typeErr.Field,
		})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
	return false
}

// jsonKind names a Go type the way a JSON client would think of it.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return t.Kind().String()
}
