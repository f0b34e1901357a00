package router

import (
	"log/slog"
	"net/http"

	"Mala_Admin/internal/config"
	"Mala_Admin/internal/handler"
	"Mala_Admin/internal/middleware"
	"Mala_Admin/internal/pkg"
	"Mala_Admin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Config   *config.Config
	Services *service.Services
	Logger   *slog.Logger
	Metrics  *pkg.Metrics
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// UploadsDir is served under /uploads when blobs live on local disk.
	UploadsDir string
	// Health reports the readiness of external dependencies.
	Health func(*gin.Context) error
}

func InitRouter(opts Options) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = pkg.DiscardLogger()
	}
	httpLogger := logger.With("component", "http")

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(opts.Metrics), middleware.Logger(httpLogger), middleware.CORS(opts.Config))
	r.MaxMultipartMemory = 8 << 20

	svc := opts.Services
	auth := handler.NewAuthHandler(svc.Auth, httpLogger)
	members := handler.NewMemberHandler(svc.Members, httpLogger)
	applications := handler.NewApplicationHandler(svc.Applications, httpLogger)
	donations := handler.NewDonationHandler(svc.Donations, httpLogger)
	complaints := handler.NewComplaintHandler(svc.Complaints, httpLogger)
	gallery := handler.NewGalleryHandler(svc.Gallery, httpLogger)
	public := handler.NewPublicHandler(svc.Intake, httpLogger)
	dashboard := handler.NewDashboardHandler(svc.Dashboard, httpLogger)

	r.GET("/healthz", func(c *gin.Context) {
		if opts.Health != nil {
			if err := opts.Health(c); err != nil {
				httpLogger.Warn("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	if opts.UploadsDir != "" {
		r.Static("/uploads", opts.UploadsDir)
	}

	// public intake
	publicGroup := r.Group("/public")
	{
		publicGroup.POST("/donations", public.SubmitDonation)
		publicGroup.POST("/membership/apply", public.ApplyMembership)
		publicGroup.POST("/complaints", public.FileComplaint)
		publicGroup.GET("/gallery", gallery.Public)
	}

	r.POST("/admin/login", auth.Login)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(svc.Auth, httpLogger))
	{
		adminGroup.POST("/logout", auth.Logout)
		adminGroup.GET("/me", auth.Me)

		adminGroup.GET("/dashboard/summary", dashboard.Summary)
		adminGroup.GET("/dashboard/monthly-trends", dashboard.MonthlyTrends)
		adminGroup.GET("/dashboard/district-distribution", dashboard.DistrictDistribution)

		adminGroup.GET("/members", members.List)
		adminGroup.POST("/members", members.Create)
		adminGroup.GET("/members/summary", members.Summary)
		adminGroup.GET("/members/export", members.Export)
		adminGroup.GET("/members/filter-options", members.FilterOptions)
		adminGroup.GET("/members/:id", members.Get)
		adminGroup.POST("/members/:id/approve", members.Approve)
		adminGroup.POST("/members/:id/reject", members.Reject)

		adminGroup.GET("/member-applications", applications.List)
		adminGroup.GET("/member-applications/summary", applications.Summary)
		adminGroup.GET("/member-applications/export", applications.Export)
		adminGroup.GET("/member-applications/:id", applications.Get)
		adminGroup.POST("/member-applications/:id/approve", applications.Approve)
		adminGroup.POST("/member-applications/:id/reject", applications.Reject)

		adminGroup.GET("/donations", donations.List)
		adminGroup.GET("/donations/summary", donations.Summary)
		adminGroup.GET("/donations/export", donations.Export)
		adminGroup.GET("/donations/:id", donations.Get)
		adminGroup.POST("/donations/:id/verify", donations.Verify)
		adminGroup.POST("/donations/:id/acknowledge", donations.Acknowledge)
		adminGroup.POST("/donations/:id/fail", donations.Fail)

		adminGroup.GET("/complaints", complaints.List)
		adminGroup.GET("/complaints/summary", complaints.Summary)
		adminGroup.GET("/complaints/export", complaints.Export)
		adminGroup.GET("/complaints/:id", complaints.Get)
		adminGroup.PATCH("/complaints/:id/status", complaints.UpdateStatus)

		adminGroup.GET("/gallery", gallery.List)
		adminGroup.POST("/gallery", gallery.Create)
		adminGroup.GET("/gallery/summary", gallery.Summary)
		adminGroup.GET("/gallery/export", gallery.Export)
		adminGroup.GET("/gallery/:id", gallery.Get)
		adminGroup.PUT("/gallery/:id", gallery.Update)
		adminGroup.DELETE("/gallery/:id", gallery.Delete)
	}

	return r, nil
}
