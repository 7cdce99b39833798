package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Amanshah2829/smart-society-sub000/api/controllers"
	"github.com/Amanshah2829/smart-society-sub000/api/middleware"
	"github.com/Amanshah2829/smart-society-sub000/internal/analytics"
	"github.com/Amanshah2829/smart-society-sub000/internal/announcements"
	"github.com/Amanshah2829/smart-society-sub000/internal/auth"
	"github.com/Amanshah2829/smart-society-sub000/internal/bills"
	"github.com/Amanshah2829/smart-society-sub000/internal/chat"
	"github.com/Amanshah2829/smart-society-sub000/internal/complaints"
	"github.com/Amanshah2829/smart-society-sub000/internal/feed"
	"github.com/Amanshah2829/smart-society-sub000/internal/ledger"
	"github.com/Amanshah2829/smart-society-sub000/internal/notifications"
	"github.com/Amanshah2829/smart-society-sub000/internal/sites"
	"github.com/Amanshah2829/smart-society-sub000/internal/users"
	"github.com/Amanshah2829/smart-society-sub000/internal/visitors"
	"github.com/Amanshah2829/smart-society-sub000/pkg/auth/session"
	"github.com/Amanshah2829/smart-society-sub000/pkg/config"
	"github.com/Amanshah2829/smart-society-sub000/pkg/enums"
	"github.com/Amanshah2829/smart-society-sub000/pkg/logger"
	"github.com/Amanshah2829/smart-society-sub000/pkg/metrics"
	"github.com/Amanshah2829/smart-society-sub000/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth          auth.Service
	Users         users.Service
	Sites         sites.Service
	Bills         bills.Service
	Complaints    complaints.Service
	Visitors      visitors.Service
	Announcements announcements.Service
	Ledger        ledger.Service
	Feed          feed.Service
	Chat          chat.Service
	Notifications notifications.Service
	Analytics     analytics.Service
}

// siteRoles are the roles that operate inside one society. Superadmin is
// deliberately absent; its routes mount without SiteContext.
var siteRoles = []enums.Role{
	enums.RoleAdmin,
	enums.RoleResident,
	enums.RoleSecurity,
	enums.RoleReceptionist,
	enums.RoleAccountant,
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessions session.Checker,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
		middleware.Gate(cfg, sessions),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, cfg, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg, sessions, logg))
			r.Post("/logout", controllers.Logout(svcs.Auth, cfg, logg))
			r.Get("/me", controllers.Me(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg, sessions, logg))

		// User-scoped surfaces; no tenant required.
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
			r.Post("/{id}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
		})
		r.Post("/password", controllers.ChangePassword(svcs.Users, logg))

		// Site-scoped surfaces.
		r.Group(func(r chi.Router) {
			r.Use(middleware.SiteContext(logg))

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
				r.Post("/", controllers.CreateUser(svcs.Users, logg))
				r.Get("/", controllers.ListUsers(svcs.Users, logg))
				r.Get("/{id}", controllers.GetUser(svcs.Users, logg))
				r.Patch("/{id}", controllers.UpdateUser(svcs.Users, logg))
				r.Delete("/{id}", controllers.DeactivateUser(svcs.Users, logg))
			})

			r.Route("/bills", func(r chi.Router) {
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleAccountant)).
					Post("/", controllers.CreateBill(svcs.Bills, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleAccountant, enums.RoleReceptionist)).
					Get("/", controllers.ListBills(svcs.Bills, logg))
				r.With(middleware.RequireRole(logg, enums.RoleResident)).
					Get("/mine", controllers.MyBills(svcs.Bills, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleAccountant, enums.RoleResident)).
					Get("/{id}", controllers.GetBill(svcs.Bills, logg))
				r.With(middleware.RequireRole(logg, enums.RoleResident)).
					Post("/{id}/pay", controllers.PayBill(svcs.Bills, logg))
			})

			r.Route("/complaints", func(r chi.Router) {
				r.With(middleware.RequireRole(logg, enums.RoleResident)).
					Post("/", controllers.CreateComplaint(svcs.Complaints, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleReceptionist, enums.RoleResident)).
					Get("/", controllers.ListComplaints(svcs.Complaints, logg))
				r.Get("/{id}", controllers.GetComplaint(svcs.Complaints, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleReceptionist)).
					Patch("/{id}/status", controllers.UpdateComplaintStatus(svcs.Complaints, logg))
				r.Post("/{id}/comments", controllers.AddComplaintComment(svcs.Complaints, logg))
				r.Get("/{id}/comments", controllers.ListComplaintComments(svcs.Complaints, logg))
			})

			r.Route("/visitors", func(r chi.Router) {
				r.With(middleware.RequireRole(logg, enums.RoleSecurity, enums.RoleReceptionist)).
					Post("/", controllers.LogVisitor(svcs.Visitors, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleSecurity, enums.RoleReceptionist, enums.RoleResident)).
					Get("/", controllers.ListVisitors(svcs.Visitors, logg))
				r.Get("/{id}", controllers.GetVisitor(svcs.Visitors, logg))
				r.With(middleware.RequireRole(logg, enums.RoleResident)).
					Post("/{id}/approve", controllers.ApproveVisitor(svcs.Visitors, logg))
				r.With(middleware.RequireRole(logg, enums.RoleResident)).
					Post("/{id}/deny", controllers.DenyVisitor(svcs.Visitors, logg))
				r.With(middleware.RequireRole(logg, enums.RoleSecurity, enums.RoleReceptionist)).
					Post("/{id}/check-in", controllers.CheckInVisitor(svcs.Visitors, logg))
				r.With(middleware.RequireRole(logg, enums.RoleSecurity, enums.RoleReceptionist)).
					Post("/{id}/check-out", controllers.CheckOutVisitor(svcs.Visitors, logg))
			})

			r.Route("/announcements", func(r chi.Router) {
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleReceptionist)).
					Post("/", controllers.CreateAnnouncement(svcs.Announcements, logg))
				r.Get("/", controllers.ListAnnouncements(svcs.Announcements, logg))
				r.Get("/{id}", controllers.GetAnnouncement(svcs.Announcements, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleReceptionist)).
					Patch("/{id}", controllers.UpdateAnnouncement(svcs.Announcements, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
					Delete("/{id}", controllers.DeleteAnnouncement(svcs.Announcements, logg))
			})

			r.Route("/ledger", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleAccountant))
				r.Post("/", controllers.RecordLedgerEntry(svcs.Ledger, logg))
				r.Get("/", controllers.ListLedgerEntries(svcs.Ledger, logg))
				r.Get("/summary", controllers.LedgerSummary(svcs.Ledger, logg))
			})

			r.Route("/feed", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, siteRoles...))
				r.Post("/posts", controllers.CreatePost(svcs.Feed, logg))
				r.Get("/posts", controllers.ListPosts(svcs.Feed, logg))
				r.Delete("/posts/{id}", controllers.DeletePost(svcs.Feed, logg))
				r.Post("/posts/{id}/like", controllers.LikePost(svcs.Feed, logg))
				r.Post("/posts/{id}/comments", controllers.AddPostComment(svcs.Feed, logg))
				r.Get("/posts/{id}/comments", controllers.ListPostComments(svcs.Feed, logg))
			})

			r.Route("/chat", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, siteRoles...))
				r.Post("/messages", controllers.SendChatMessage(svcs.Chat, logg))
				r.Get("/messages", controllers.ListChatMessages(svcs.Chat, logg))
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequireRole(logg, enums.RoleAdmin)).
					Get("/admin", controllers.AdminDashboard(svcs.Analytics, logg))
				r.With(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleAccountant)).
					Get("/accountant", controllers.AccountantDashboard(svcs.Analytics, logg))
			})
		})

		// Platform surfaces; superadmin sessions carry no site.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleSuperAdmin))

			r.Route("/sites", func(r chi.Router) {
				r.Post("/", controllers.CreateSite(svcs.Sites, logg))
				r.Get("/", controllers.ListSites(svcs.Sites, logg))
				r.Get("/{id}", controllers.GetSite(svcs.Sites, logg))
				r.Patch("/{id}", controllers.UpdateSite(svcs.Sites, logg))
				r.Delete("/{id}", controllers.DeactivateSite(svcs.Sites, logg))
			})
			r.Get("/dashboard/superadmin", controllers.SuperAdminDashboard(svcs.Analytics, logg))
		})
	})

	return r
}
