package api

import (
	"net/http"
	"strconv"
	"time"

	"price-catalog/internal/auth"
	"price-catalog/internal/errs"
	"price-catalog/internal/service"
	"price-catalog/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const sessionCookie = "auth-token"

// Handler contains HTTP handlers
type Handler struct {
	catalog       *service.CatalogService
	lookup        *service.LookupService
	users         *service.UserService
	auth          *auth.Service
	secureCookies bool
	logger        *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	lookup *service.LookupService,
	users *service.UserService,
	authService *auth.Service,
	secureCookies bool,
) *Handler {
	return &Handler{
		catalog:       catalog,
		lookup:        lookup,
		users:         users,
		auth:          authService,
		secureCookies: secureCookies,
		logger:        util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth/verify", h.verifyToken)

	products := router.Group("/products")
	{
		products.POST("", h.requireAuth, h.registerProduct)
		products.POST("/new-prices/:barcode", h.requireAuth, h.addPrice)
		products.GET("", h.listProducts)
		products.GET("/search", h.searchProducts)
		products.GET("/barcode/:barcode", h.lookupByBarcode)
	}

	stores := router.Group("/stores")
	{
		stores.POST("", h.requireAuth, h.createStore)
		stores.GET("", h.listStores)
	}

	users := router.Group("/users", h.requireAuth)
	{
		users.POST("", h.createUser)
		users.GET("/me", h.me)
		users.PATCH("/login", h.login)
		users.PATCH("/name", h.updateUserName)
		users.DELETE("", h.deleteUser)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// verifyToken exchanges an identity provider ID token for a session cookie
func (h *Handler) verifyToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	session, err := h.auth.CreateSession(c.Request.Context(), req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.SetCookie(sessionCookie, session.Token,
		int(session.ExpiresIn.Seconds()), "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_in": int64(session.ExpiresIn.Seconds()),
	})
}

// requireAuth guards write routes with the session cookie
func (h *Handler) requireAuth(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	uid, err := h.auth.VerifySession(c.Request.Context(), token)
	if err != nil {
		status := http.StatusUnauthorized
		if !errs.IsKind(err, errs.Unauthenticated) {
			status = http.StatusInternalServerError
			h.logger.Error("Session verification failed", zap.Error(err))
		}
		c.AbortWithStatusJSON(status, gin.H{"error": "authentication required"})
		return
	}

	c.Set("uid", uid)
	c.Next()
}

// registerProduct handles new product registration with its first price
func (h *Handler) registerProduct(c *gin.Context) {
	var req service.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	detail, err := h.catalog.RegisterProduct(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

// addPrice handles a price submission for an existing product
func (h *Handler) addPrice(c *gin.Context) {
	var req service.AddPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	price, err := h.catalog.AddPrice(c.Request.Context(), c.Param("barcode"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, price)
}

// listProducts returns the whole catalog
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// searchProducts handles term search with an optional store filter
func (h *Handler) searchProducts(c *gin.Context) {
	term := c.Query("term")
	storeID := c.DefaultQuery("storeId", service.StoreFilterAll)

	products, err := h.catalog.Search(c.Request.Context(), term, storeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// lookupByBarcode resolves a scanned barcode locally or via the provider
func (h *Handler) lookupByBarcode(c *gin.Context) {
	detail, err := h.lookup.LookupByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// createStore handles store registration
func (h *Handler) createStore(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	st, err := h.catalog.CreateStore(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, st)
}

// listStores returns all registered stores
func (h *Handler) listStores(c *gin.Context) {
	stores, err := h.catalog.ListStores(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

// createUser mirrors the authenticated account locally
func (h *Handler) createUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := h.users.Create(c.Request.Context(), c.GetString("uid"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// me returns the authenticated user's record
func (h *Handler) me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// login refreshes the authenticated user's last login time
func (h *Handler) login(c *gin.Context) {
	user, err := h.users.Login(c.Request.Context(), c.GetString("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// updateUserName changes the authenticated user's display name
func (h *Handler) updateUserName(c *gin.Context) {
	var req service.UpdateUserNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	user, err := h.users.UpdateName(c.Request.Context(), c.GetString("uid"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// deleteUser removes the authenticated user's record
func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.GetString("uid")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps typed failures to status codes. Failures are logged here
// once, at the transport boundary.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := errs.KindOf(err)

	var status int
	switch kind {
	case errs.NotFound:
		status = http.StatusNotFound
	case errs.InvalidArgument:
		status = http.StatusBadRequest
	case errs.Conflict:
		status = http.StatusConflict
	case errs.UpstreamUnavailable:
		status = http.StatusBadGateway
	case errs.Unauthenticated:
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	} else {
		h.logger.Info("Request rejected",
			zap.String("path", c.FullPath()),
			zap.String("kind", kind.String()),
			zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
