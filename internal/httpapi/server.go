package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"classifyd/internal/classifier"
	"classifyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Classify(ctx context.Context, r io.Reader) (classifier.Prediction, error)
	Labels() []string
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(corsHandler())
	}
	r.Use(MetricsMiddleware)

	classify := handleClassify(svc)
	r.Post("/api/classify", classify)
	r.Post("/api/classify/", classify)

	r.Get("/api/labels", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.LabelsResponse{Labels: svc.Labels()})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	if swaggerEnabled {
		MountSwagger(r)
	}
	return r
}

func corsHandler() func(http.Handler) http.Handler {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "X-Request-Id", "X-Log-Level"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})
}

// handleClassify classifies the uploaded image.
//
// @Summary      Classify an image
// @Description  Resizes the uploaded image and returns the most probable class.
// @Tags         classify
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  true  "Image to classify"
// @Success      200  {object}  types.ClassifyResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /api/classify [post]
func handleClassify(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		logStart(r, lvl)

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		file, _, err := r.FormFile("image")
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}
		if err != nil {
			if isMissingImage(err) {
				IncrementFailure("missing_image")
				writeJSONError(w, http.StatusBadRequest, errNoImage)
				logEnd(r, lvl, http.StatusBadRequest, start, nil, err)
				return
			}
			IncrementFailure("request")
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			logEnd(r, lvl, http.StatusInternalServerError, start, nil, err)
			return
		}
		defer file.Close()

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		classifyStart := time.Now()
		p, err := svc.Classify(ctx, file)
		ObserveInference(time.Since(classifyStart))
		if err != nil {
			IncrementFailure(classifier.Reason(err))
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			logEnd(r, lvl, http.StatusInternalServerError, start, nil, err)
			return
		}
		IncrementPrediction(p.Label)
		writeJSON(w, types.ClassifyResponse{Result: p.Label, Confidence: p.Confidence()})
		logEnd(r, lvl, http.StatusOK, start, &p, nil)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func logStart(r *http.Request, lvl LogLevel) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Int64("content_length", r.ContentLength)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("classify start")
		return
	}
	log.Printf("classify start path=%s content_length=%d", r.URL.Path, r.ContentLength)
}

// logEnd reports the outcome. Failures are logged at LevelError and above,
// successes at LevelInfo and above.
func logEnd(r *http.Request, lvl LogLevel, status int, start time.Time, p *classifier.Prediction, err error) {
	if lvl < LevelError || (err == nil && lvl < LevelInfo) {
		return
	}
	dur := time.Since(start)
	if zlog != nil {
		z := zlog.Info()
		if err != nil {
			z = zlog.Error().Err(err).Str("reason", classifier.Reason(err))
		}
		z = z.Int("status", status).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if p != nil {
			z = z.Str("label", p.Label).Str("confidence", p.Confidence())
		}
		z.Msg("classify end")
		return
	}
	switch {
	case err != nil:
		log.Printf("classify end status=%d dur=%s err=%v", status, dur, err)
	case p != nil:
		log.Printf("classify end status=%d dur=%s label=%q confidence=%s", status, dur, p.Label, p.Confidence())
	default:
		log.Printf("classify end status=%d dur=%s", status, dur)
	}
}
