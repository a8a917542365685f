package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/domain"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps the request bodies read by the JSON middleware
const maxBodyBytes = 1 << 20

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

type contextKey int

// ContextKeyProduct is the request context key of the decoded ProductInput
const ContextKeyProduct contextKey = iota

// Middleware struct holds dependencies for middleware functions
type Middleware struct {
	Logger     hclog.Logger
	corsConfig *CORSConfig
	limiter    *rate.Limiter
}

// CORSConfig holds configuration for CORS middleware
type CORSConfig struct {
	AllowedOrigin  string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORSConfig allows the given frontend origin only
func DefaultCORSConfig(origin string) *CORSConfig {
	return &CORSConfig{
		AllowedOrigin:  origin,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Version"},
	}
}

// NewRateLimiter returns a token bucket admitting maxRequests per window
func NewRateLimiter(maxRequests int, window time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(window/time.Duration(maxRequests)), maxRequests)
}

// NewMiddleware creates a new Middleware instance
func NewMiddleware(logger hclog.Logger, corsConfig *CORSConfig, limiter *rate.Limiter) *Middleware {
	if corsConfig == nil {
		corsConfig = DefaultCORSConfig("http://localhost:5173")
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Middleware{
		Logger:     logger,
		corsConfig: corsConfig,
		limiter:    limiter,
	}
}

// RecoveryMiddleware turns panics into 500 responses and logs them
func (m *Middleware) RecoveryMiddleware(next http.Handler) http.Handler {
	stdLogger := m.Logger.StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Error})
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(stdLogger),
		handlers.PrintRecoveryStack(true),
	)(next)
}

// CORSMiddleware accepts cross-origin requests from the configured origin only
func (m *Middleware) CORSMiddleware(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{m.corsConfig.AllowedOrigin}),
		handlers.AllowedMethods(m.corsConfig.AllowedMethods),
		handlers.AllowedHeaders(m.corsConfig.AllowedHeaders),
	)(next)
}

// CompressionMiddleware compresses responses for clients that accept it
func (m *Middleware) CompressionMiddleware(next http.Handler) http.Handler {
	return handlers.CompressHandler(next)
}

// LoggingMiddleware logs the incoming requests and responses
func (m *Middleware) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		m.Logger.Info("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		// Add the request ID to the response header
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)

		m.Logger.Info("Completed request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
			"duration", time.Since(start),
		)
	})
}

// JSONBodyMiddleware rejects JSON bodies that are not well formed before
// they reach the router. Like most JSON body parsers it only accepts an
// object or an array at the top level.
func (m *Middleware) JSONBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !hasContentType(r, contentTypeJSON) {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, MessageResponse{Message: "request body too large"})
				return
			}
			m.Logger.Error("Unable to read request body", "error", err)
			writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidJSON})
			return
		}

		if err := checkJSON(body); err != nil {
			m.Logger.Error("JSON syntax error", "method", r.Method, "url", r.URL.Path, "error", err)
			writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidJSON})
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func checkJSON(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return errors.New("top-level value must be an object or an array")
	}
	var v json.RawMessage
	return json.Unmarshal(trimmed, &v)
}

// RateLimitMiddleware applies one limit to the total number of requests
func (m *Middleware) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow() {
			m.Logger.Warn("Rate limit exceeded", "method", r.Method, "url", r.URL.Path)
			if limit := m.limiter.Limit(); limit > 0 && limit != rate.Inf {
				retry := math.Ceil(1 / float64(limit))
				w.Header().Set("Retry-After", strconv.Itoa(int(retry)))
			}
			writeJSON(w, http.StatusTooManyRequests, MessageResponse{Message: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FormBodyMiddleware turns URL-encoded product forms into the JSON body the
// handlers decode. Numeric fields are converted when they parse as numbers;
// empty values count as absent.
func (m *Middleware) FormBodyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || !hasContentType(r, contentTypeForm) {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			m.Logger.Error("Unable to parse form body", "error", err)
			writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidProduct})
			return
		}

		body, err := json.Marshal(formFields(r.PostForm))
		if err != nil {
			m.Logger.Error("Unable to convert form body", "error", err)
			writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidProduct})
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
		r.Header.Set("Content-Type", contentTypeJSON)
		next.ServeHTTP(w, r)
	})
}

func formFields(form url.Values) map[string]any {
	fields := map[string]any{}
	for _, key := range []string{"name", "description"} {
		if v := form.Get(key); v != "" {
			fields[key] = v
		}
	}
	if v := strings.TrimSpace(form.Get("price")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			fields["price"] = f
		} else {
			fields["price"] = v
		}
	}
	if v := strings.TrimSpace(form.Get("quantity")); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			fields["quantity"] = i
		} else {
			fields["quantity"] = v
		}
	}
	return fields
}

// ProductInputMiddleware decodes the product fields of the request and adds
// them to the context
func (m *Middleware) ProductInputMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input domain.ProductInput

		if hasContentType(r, contentTypeJSON) && r.Body != nil {
			err := json.NewDecoder(r.Body).Decode(&input)
			if err != nil && !errors.Is(err, io.EOF) {
				m.Logger.Error("Error decoding product", "error", err)
				writeJSON(w, http.StatusBadRequest, MessageResponse{Message: MessageInvalidProduct})
				return
			}
		}

		ctx := context.WithValue(r.Context(), ContextKeyProduct, input)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func hasContentType(r *http.Request, want string) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == want
}
