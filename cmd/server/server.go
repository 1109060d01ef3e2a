package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tremorlab/motorscreen/internal/cache"
	"github.com/tremorlab/motorscreen/internal/config"
	"github.com/tremorlab/motorscreen/internal/database"
	"github.com/tremorlab/motorscreen/internal/errors"
	"github.com/tremorlab/motorscreen/internal/monitoring"
	"github.com/tremorlab/motorscreen/internal/privacy"
	"github.com/tremorlab/motorscreen/internal/ratelimit"
	"github.com/tremorlab/motorscreen/internal/recommend"
	"github.com/tremorlab/motorscreen/internal/scoring"
	"github.com/tremorlab/motorscreen/internal/security"
	"github.com/tremorlab/motorscreen/internal/types"
)

// App bundles the services behind the HTTP surface
type App struct {
	cfg       *config.Config
	db        *database.DB
	service   *database.Service
	privacy   *privacy.PrivacyService
	generator recommend.Generator
	metrics   *monitoring.Metrics
	logger    *monitoring.Logger
	cache     *cache.Cache
	limiter   *ratelimit.RateLimiter
}

// newRouter builds the full Gin engine with all middleware and routes
func (app *App) newRouter() *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(app.metrics, app.logger))
	r.Use(monitoring.SecurityMonitoringMiddleware(app.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	securityConfig := security.DefaultSecurityConfig()
	securityConfig.MaxRequestsPerMin = app.cfg.RateLimitPerMinute
	securityConfig.AllowedOrigins = app.cfg.AllowedOrigins
	securityConfig.RequestTimeout = time.Duration(app.cfg.RequestTimeoutSeconds) * time.Second
	sm := security.NewSecurityMiddleware(securityConfig)

	r.Use(sm.SecurityHeaders)
	r.Use(sm.RequestTimeout)
	r.Use(sm.ValidateContentType)
	r.Use(sm.MaxBodySize)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     app.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", app.handleHealth)
	r.GET("/metrics", gin.WrapH(app.metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	assess := api.Group("/assess")
	assess.Use(app.limiter.IPRateLimitMiddleware())
	assess.Use(app.cache.Middleware(app.metrics, app.logger, app.persistCachedAssessment))
	{
		assess.POST("/spiral", app.handleAssessSpiral)
		assess.POST("/tapping", app.handleAssessTapping)
		assess.POST("/reaction", app.handleAssessReaction)
		assess.POST("/voice", app.handleAssessVoice)
	}

	api.POST("/session", app.handleCreateSession)
	api.GET("/history", app.handleHistory)
	api.DELETE("/data", app.handleDeleteData)

	api.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.cache.Stats())
	})
	api.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pool":  "database",
			"stats": app.db.GetPoolStats(),
		})
	})

	return r
}

func (app *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    app.metrics.Uptime().String(),
	})
}

// identify resolves the caller to a stored user. IPs are hashed before
// they reach the database.
func (app *App) identify(c *gin.Context) (*database.User, error) {
	return app.service.IdentifyClient(
		app.privacy.AnonymizeIP(c.ClientIP()),
		c.GetHeader("User-Agent"),
	)
}

func (app *App) respondError(c *gin.Context, err error) {
	appErr := errors.ToAppError(err)
	errors.LogError(c, appErr)
	c.JSON(appErr.HTTPStatus, gin.H{
		"error":    appErr.ErrBuilder.Msg,
		"category": appErr.Category,
	})
}

// finishAssessment attaches a recommendation, persists the result and
// records metrics. Recommendation or persistence failures never
// invalidate a scored result.
func (app *App) finishAssessment(c *gin.Context, result scoring.Result, status scoring.Status, started time.Time, attach func(string)) {
	recommendation := ""
	if status == scoring.StatusOK {
		text, err := app.generator.Recommend(c.Request.Context(),
			result.Modality(), result.Subscores(), result.Overall(), result.Risk())
		if err == nil {
			recommendation = text
			attach(text)
		} else {
			app.logger.Warn("Recommendation unavailable",
				"modality", result.Modality(), "error", err)
		}
	}

	app.recordAssessment(c, result, status, recommendation, started)
}

// recordAssessment persists a result for the caller and records metrics.
func (app *App) recordAssessment(c *gin.Context, result scoring.Result, status scoring.Status, recommendation string, started time.Time) {
	if user, err := app.identify(c); err == nil {
		if _, err := app.service.RecordAssessment(user.ID, result, string(status), recommendation); err != nil {
			app.logger.Error("Failed to persist assessment",
				"modality", result.Modality(), "error", err)
		}
	} else {
		app.logger.Error("Failed to identify client", "error", err)
	}

	duration := time.Since(started)
	app.metrics.RecordAssessment(result.Modality(), string(status), string(result.Risk()), duration)
	app.logger.AssessmentLogger(result.Modality(), len(result.Subscores()), result.Overall(), string(result.Risk()), duration)
}

// persistCachedAssessment records a cache-served submission under the
// caller's own identity. The cache key is shared across callers, so
// without this a repeat submission would vanish from history and metrics.
func (app *App) persistCachedAssessment(c *gin.Context, cached []byte) {
	started := time.Now()

	result, status, recommendation, err := decodeCachedResult(c.Request.URL.Path, cached)
	if err != nil {
		app.logger.Error("Failed to decode cached assessment",
			"path", c.Request.URL.Path, "error", err)
		return
	}

	app.recordAssessment(c, result, status, recommendation, started)
}

// decodeCachedResult rebuilds the scored result from a cached response
// body, keyed by the assess route it was served from.
func decodeCachedResult(path string, data []byte) (scoring.Result, scoring.Status, string, error) {
	switch strings.TrimPrefix(path, "/api/v1/assess/") {
	case "spiral":
		var r scoring.SpiralResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, "", "", err
		}
		return r, r.Status, r.Recommendation, nil
	case "tapping":
		var r scoring.TappingResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, "", "", err
		}
		return r, r.Status, r.Recommendation, nil
	case "reaction":
		var r scoring.ReactionResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, "", "", err
		}
		return r, r.Status, r.Recommendation, nil
	case "voice":
		var r scoring.VoiceResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, "", "", err
		}
		return r, r.Status, r.Recommendation, nil
	default:
		return nil, "", "", fmt.Errorf("unknown assess route: %s", path)
	}
}

func (app *App) handleAssessSpiral(c *gin.Context) {
	started := time.Now()

	var req types.SpiralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.metrics.RecordScoringError("spiral")
		app.respondError(c, errors.NewValidationError("invalid spiral payload: "+err.Error()))
		return
	}

	result, err := scoring.ScoreSpiral(req.Points)
	if err != nil {
		app.metrics.RecordScoringError("spiral")
		app.respondError(c, err)
		return
	}

	app.finishAssessment(c, result, result.Status, started, func(text string) {
		result.Recommendation = text
	})
	c.JSON(http.StatusOK, result)
}

func (app *App) handleAssessTapping(c *gin.Context) {
	started := time.Now()

	var req types.TappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.metrics.RecordScoringError("tapping")
		app.respondError(c, errors.NewValidationError("invalid tapping payload: "+err.Error()))
		return
	}

	result, err := scoring.ScoreTapping(req.TapTimestampsMs, req.DurationSeconds)
	if err != nil {
		app.metrics.RecordScoringError("tapping")
		app.respondError(c, err)
		return
	}

	app.finishAssessment(c, result, result.Status, started, func(text string) {
		result.Recommendation = text
	})
	c.JSON(http.StatusOK, result)
}

func (app *App) handleAssessReaction(c *gin.Context) {
	started := time.Now()

	var req types.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.metrics.RecordScoringError("reaction")
		app.respondError(c, errors.NewValidationError("invalid reaction payload: "+err.Error()))
		return
	}

	result, err := scoring.ScoreReaction(req.ReactionTimesMs)
	if err != nil {
		app.metrics.RecordScoringError("reaction")
		app.respondError(c, err)
		return
	}

	app.finishAssessment(c, result, result.Status, started, func(text string) {
		result.Recommendation = text
	})
	c.JSON(http.StatusOK, result)
}

func (app *App) handleAssessVoice(c *gin.Context) {
	started := time.Now()

	var req types.VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		app.metrics.RecordScoringError("voice")
		app.respondError(c, errors.NewValidationError("invalid voice payload: "+err.Error()))
		return
	}

	result, err := scoring.ScoreVoice(req.Assessment())
	if err != nil {
		app.metrics.RecordScoringError("voice")
		app.respondError(c, err)
		return
	}

	app.finishAssessment(c, result, result.Status, started, func(text string) {
		result.Recommendation = text
	})
	c.JSON(http.StatusOK, result)
}

func (app *App) handleCreateSession(c *gin.Context) {
	user, err := app.identify(c)
	if err != nil {
		app.respondError(c, err)
		return
	}

	token, err := app.service.GenerateSessionToken(user.ID)
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": app.cfg.SessionTTLHours * 3600,
	})
}

// callerUserID resolves the caller from a bearer token when present,
// falling back to the IP-derived identity. A bad token is an auth
// failure; a failed IP lookup is a store error and surfaces as such.
func (app *App) callerUserID(c *gin.Context) (string, error) {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		userID, err := app.service.ValidateSessionToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return "", errors.NewUnauthorizedError("invalid session token", err)
		}
		return userID, nil
	}

	user, err := app.identify(c)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (app *App) handleHistory(c *gin.Context) {
	userID, err := app.callerUserID(c)
	if err != nil {
		app.respondError(c, err)
		return
	}

	modality := c.Query("modality")
	switch modality {
	case "", "spiral", "tapping", "reaction", "voice":
	default:
		app.respondError(c, errors.NewValidationError("unknown modality: "+modality))
		return
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	assessments, err := app.service.History(userID, modality, limit)
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

func (app *App) handleDeleteData(c *gin.Context) {
	userID, err := app.callerUserID(c)
	if err != nil {
		app.respondError(c, err)
		return
	}

	deleted, err := app.privacy.DeleteUserData(userID)
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "user data deleted",
		"assessments_deleted": deleted,
	})
}
