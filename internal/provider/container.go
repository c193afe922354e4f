package provider

import (
	"github.com/Deekshith-46/brain-buzz/internal/authz"
	"github.com/Deekshith-46/brain-buzz/internal/cache"
	"github.com/Deekshith-46/brain-buzz/internal/config"
	"github.com/Deekshith-46/brain-buzz/internal/logger"
	"github.com/Deekshith-46/brain-buzz/internal/models"
	"github.com/Deekshith-46/brain-buzz/internal/payment/razorpay"
	"github.com/Deekshith-46/brain-buzz/internal/queue"
	"github.com/Deekshith-46/brain-buzz/internal/repository"
	"github.com/Deekshith-46/brain-buzz/internal/service"
)

// Container is the dependency injection container
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Gateway     *razorpay.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	CouponRepo        repository.CouponRepository
	CouponUsageRepo   repository.CouponUsageRepository
	PurchaseRepo      repository.PurchaseRepository
	CourseRepo        repository.CourseRepository
	EBookRepo         repository.EBookRepository
	PublicationRepo   repository.PublicationRepository
	TestSeriesRepo    repository.TestSeriesRepository
	CurrentAffairRepo repository.CurrentAffairRepository
	DailyQuizRepo     repository.DailyQuizRepository
	CategoryRepo      repository.CategoryRepository
	SubCategoryRepo   repository.SubCategoryRepository
	LanguageRepo      repository.LanguageRepository

	// Services
	AuthzService         *authz.Service
	AuthService          *service.AuthService
	UserAuthService      *service.UserAuthService
	TaxonomyService      *service.TaxonomyService
	CourseService        *service.CourseService
	EBookService         *service.EBookService
	PublicationService   *service.PublicationService
	TestSeriesService    *service.TestSeriesService
	CurrentAffairService *service.CurrentAffairService
	DailyQuizService     *service.DailyQuizService
	CouponService        *service.CouponService
	CouponAdminService   *service.CouponAdminService
	PricingService       *service.PricingService
	EntitlementService   *service.EntitlementService
	PurchaseService      *service.PurchaseService
	UserAdminService     *service.UserAdminService
}

// NewContainer initializes the container
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.CourseRepo = repository.NewCourseRepository(db)
	c.EBookRepo = repository.NewEBookRepository(db)
	c.PublicationRepo = repository.NewPublicationRepository(db)
	c.TestSeriesRepo = repository.NewTestSeriesRepository(db)
	c.CurrentAffairRepo = repository.NewCurrentAffairRepository(db)
	c.DailyQuizRepo = repository.NewDailyQuizRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SubCategoryRepo = repository.NewSubCategoryRepository(db)
	c.LanguageRepo = repository.NewLanguageRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	// Gateway credentials have no defaults. Misconfigured deployments
	// must not come up able to take payments.
	gateway, err := razorpay.NewClient(razorpay.Config{
		KeyID:     c.Config.Razorpay.KeyID,
		KeySecret: c.Config.Razorpay.KeySecret,
		BaseURL:   c.Config.Razorpay.BaseURL,
	})
	if err != nil {
		logger.Errorw("provider_init_gateway_failed", "error", err)
		panic(err)
	}
	c.Gateway = gateway

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.TaxonomyService = service.NewTaxonomyService(c.CategoryRepo, c.SubCategoryRepo, c.LanguageRepo)
	c.CourseService = service.NewCourseService(c.CourseRepo)
	c.PublicationService = service.NewPublicationService(c.PublicationRepo)
	c.CurrentAffairService = service.NewCurrentAffairService(c.CurrentAffairRepo)
	c.DailyQuizService = service.NewDailyQuizService(c.DailyQuizRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.CouponUsageRepo)
	c.EntitlementService = service.NewEntitlementService(c.PurchaseRepo)
	c.EBookService = service.NewEBookService(c.EBookRepo, c.EntitlementService)
	c.TestSeriesService = service.NewTestSeriesService(c.TestSeriesRepo, c.EntitlementService)
	c.PricingService = service.NewPricingService(c.TestSeriesRepo, c.CourseRepo, c.EBookRepo, c.PublicationRepo, c.CouponService)
	c.PurchaseService = service.NewPurchaseService(
		c.PurchaseRepo,
		c.UserRepo,
		c.CouponRepo,
		c.CouponUsageRepo,
		c.PricingService,
		c.Gateway,
		c.QueueClient,
		c.Config.Purchase.PaymentExpireMinutes,
	)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
}
