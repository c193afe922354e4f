package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Deekshith-46/brain-buzz/internal/authz"
	"github.com/Deekshith-46/brain-buzz/internal/cache"
	"github.com/Deekshith-46/brain-buzz/internal/config"
	adminhandlers "github.com/Deekshith-46/brain-buzz/internal/http/handlers/admin"
	publichandlers "github.com/Deekshith-46/brain-buzz/internal/http/handlers/public"
	"github.com/Deekshith-46/brain-buzz/internal/http/response"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bb"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts, retry in %d seconds",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts, retry in %d seconds",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Browsing the catalog requires no account
		public := apiV1.Group("/public")
		{
			public.GET("/courses", publicHandler.ListCourses)
			public.GET("/courses/:id", publicHandler.GetCourse)
			public.GET("/ebooks", publicHandler.ListEBooks)
			public.GET("/ebooks/:id", publicHandler.GetEBook)
			public.GET("/publications", publicHandler.ListPublications)
			public.GET("/publications/:id", publicHandler.GetPublication)
			public.GET("/test-series", publicHandler.ListTestSeries)
			public.GET("/test-series/:id", publicHandler.GetTestSeries)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/sub-categories", publicHandler.ListSubCategories)
			public.GET("/languages", publicHandler.ListLanguages)
			public.GET("/current-affairs", publicHandler.ListCurrentAffairs)
			public.GET("/current-affairs/:id", publicHandler.GetCurrentAffair)
			public.GET("/daily-quizzes", publicHandler.ListDailyQuizzes)
			public.GET("/daily-quizzes/:id", publicHandler.GetDailyQuiz)
			public.GET("/daily-quizzes/by-date/:date", publicHandler.GetDailyQuizByDate)
			public.GET("/pricing/quote", publicHandler.QuoteItem)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserProfile)
			user.PUT("/me/profile", publicHandler.UserUpdateProfile)
			user.PUT("/me/password", publicHandler.UserChangePassword)
			user.GET("/me/entitlements", publicHandler.CheckEntitlement)
			user.GET("/ebooks/:id/download", publicHandler.DownloadEBook)
			user.GET("/tests/:id", publicHandler.GetTest)
			user.GET("/tests/:id/solution-video", publicHandler.GetTestSolutionVideo)
			user.POST("/purchases", publicHandler.CreatePurchase)
			user.POST("/purchases/verify", publicHandler.VerifyPayment)
			user.GET("/purchases", publicHandler.ListPurchases)
			user.GET("/purchases/:id", publicHandler.GetPurchase)
		}

		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.AdminMe)
				authorized.PUT("/password", adminHandler.AdminChangePassword)

				authorized.GET("/courses", adminHandler.ListAdminCourses)
				authorized.GET("/courses/:id", adminHandler.GetAdminCourse)
				authorized.POST("/courses", adminHandler.CreateCourse)
				authorized.PUT("/courses/:id", adminHandler.UpdateCourse)
				authorized.DELETE("/courses/:id", adminHandler.DeleteCourse)

				authorized.GET("/ebooks", adminHandler.ListAdminEBooks)
				authorized.GET("/ebooks/:id", adminHandler.GetAdminEBook)
				authorized.POST("/ebooks", adminHandler.CreateEBook)
				authorized.PUT("/ebooks/:id", adminHandler.UpdateEBook)
				authorized.DELETE("/ebooks/:id", adminHandler.DeleteEBook)

				authorized.GET("/publications", adminHandler.ListAdminPublications)
				authorized.GET("/publications/:id", adminHandler.GetAdminPublication)
				authorized.POST("/publications", adminHandler.CreatePublication)
				authorized.PUT("/publications/:id", adminHandler.UpdatePublication)
				authorized.DELETE("/publications/:id", adminHandler.DeletePublication)

				authorized.GET("/test-series", adminHandler.ListAdminTestSeries)
				authorized.GET("/test-series/:id", adminHandler.GetAdminTestSeries)
				authorized.POST("/test-series", adminHandler.CreateTestSeries)
				authorized.PUT("/test-series/:id", adminHandler.UpdateTestSeries)
				authorized.DELETE("/test-series/:id", adminHandler.DeleteTestSeries)
				authorized.GET("/test-series/:id/tests", adminHandler.ListAdminTests)
				authorized.POST("/test-series/:id/tests", adminHandler.CreateTest)
				authorized.PUT("/tests/:id", adminHandler.UpdateTest)
				authorized.DELETE("/tests/:id", adminHandler.DeleteTest)
				authorized.POST("/tests/:id/sections", adminHandler.CreateTestSection)
				authorized.PUT("/sections/:id", adminHandler.UpdateTestSection)
				authorized.DELETE("/sections/:id", adminHandler.DeleteTestSection)
				authorized.POST("/sections/:id/questions", adminHandler.CreateTestQuestion)
				authorized.PUT("/questions/:id", adminHandler.UpdateTestQuestion)
				authorized.DELETE("/questions/:id", adminHandler.DeleteTestQuestion)

				authorized.GET("/categories", adminHandler.ListAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/sub-categories", adminHandler.ListAdminSubCategories)
				authorized.POST("/sub-categories", adminHandler.CreateSubCategory)
				authorized.PUT("/sub-categories/:id", adminHandler.UpdateSubCategory)
				authorized.DELETE("/sub-categories/:id", adminHandler.DeleteSubCategory)
				authorized.GET("/languages", adminHandler.ListAdminLanguages)
				authorized.POST("/languages", adminHandler.CreateLanguage)
				authorized.PUT("/languages/:id", adminHandler.UpdateLanguage)
				authorized.DELETE("/languages/:id", adminHandler.DeleteLanguage)

				authorized.GET("/current-affairs", adminHandler.ListAdminCurrentAffairs)
				authorized.POST("/current-affairs", adminHandler.CreateCurrentAffair)
				authorized.PUT("/current-affairs/:id", adminHandler.UpdateCurrentAffair)
				authorized.DELETE("/current-affairs/:id", adminHandler.DeleteCurrentAffair)
				authorized.GET("/daily-quizzes", adminHandler.ListAdminDailyQuizzes)
				authorized.GET("/daily-quizzes/:id", adminHandler.GetAdminDailyQuiz)
				authorized.POST("/daily-quizzes", adminHandler.CreateDailyQuiz)
				authorized.PUT("/daily-quizzes/:id", adminHandler.UpdateDailyQuiz)
				authorized.DELETE("/daily-quizzes/:id", adminHandler.DeleteDailyQuiz)
				authorized.POST("/daily-quizzes/:id/questions", adminHandler.AddQuizQuestion)
				authorized.DELETE("/quiz-questions/:id", adminHandler.DeleteQuizQuestion)

				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetCoupon)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
				authorized.GET("/coupons/:id/usages", adminHandler.ListCouponUsages)

				authorized.GET("/purchases", adminHandler.ListAdminPurchases)
				authorized.GET("/purchases/:id", adminHandler.GetAdminPurchase)
				authorized.POST("/purchases/:id/fail", adminHandler.MarkPurchaseFailed)

				authorized.GET("/users", adminHandler.ListAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/:id/status", adminHandler.SetUserStatus)

				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
