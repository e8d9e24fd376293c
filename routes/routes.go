package routes

import (
	"momfirst/assets"
	"momfirst/auth"
	"momfirst/bookings"
	"momfirst/calendar"
	"momfirst/faqs"
	"momfirst/middleware"
	"momfirst/ratelim"
	"momfirst/reviews"
	"momfirst/sections"
	"momfirst/sessions"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handlers collects every feature handler main builds.
type Handlers struct {
	Auth     *auth.Handler
	Sections *sections.Handler
	Calendar *calendar.Handler
	Bookings *bookings.Handler
	Sessions *sessions.Handler
	Reviews  *reviews.Handler
	Faqs     *faqs.Handler
	Assets   *assets.Handler
}

func RoutesWrapper(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	AddAuthRoutes(router, h, rl)
	AddSectionRoutes(router, h, rl)
	AddCalendarRoutes(router, h, rl)
	AddBookingRoutes(router, h, rl)
	AddSessionRoutes(router, h, rl)
	AddReviewsRoutes(router, h, rl)
	AddFaqRoutes(router, h, rl)
	AddAssetRoutes(router, h, rl)
	AddStaticRoutes(router)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(h.Auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Auth.Logout))
	router.POST("/api/auth/register", rl.Limit(middleware.OptionalAuth(h.Auth.Register)))
}

func AddSectionRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/sections", middleware.Authenticate(h.Sections.ListSections))
	router.GET("/api/sections/:id", middleware.Authenticate(h.Sections.GetSection))
	router.PUT("/api/sections/:id", middleware.Authenticate(h.Sections.SaveSection))
}

func AddCalendarRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	// the public booking form reads availability without a login
	router.GET("/api/slots/available", rl.Limit(h.Calendar.ListAvailable))
	router.GET("/api/slots", middleware.Authenticate(h.Calendar.ListAll))
	router.POST("/api/slots", middleware.Authenticate(h.Calendar.CreateSlot))
	router.DELETE("/api/slots/:id", middleware.Authenticate(h.Calendar.DeleteSlot))
}

func AddBookingRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/bookings", rl.Limit(h.Bookings.CreateBooking))
	router.GET("/api/bookings", middleware.Authenticate(h.Bookings.ListBookings))
	router.GET("/api/bookings/:id/pass", middleware.Authenticate(h.Bookings.PrintPass))
}

func AddSessionRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/sessions", middleware.Authenticate(h.Sessions.ListSessions))
	router.GET("/api/sessions/:id", middleware.Authenticate(h.Sessions.GetSession))
	router.POST("/api/sessions", middleware.Authenticate(h.Sessions.CreateSession))
	router.PUT("/api/sessions/:id", middleware.Authenticate(h.Sessions.UpdateSession))
	router.DELETE("/api/sessions/:id", middleware.Authenticate(h.Sessions.DeleteSession))
}

func AddReviewsRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/reviews", rl.Limit(h.Reviews.GetReviews))
	router.POST("/api/reviews", middleware.Authenticate(h.Reviews.AddReview))
	router.PUT("/api/reviews/:reviewId", middleware.Authenticate(h.Reviews.EditReview))
	router.DELETE("/api/reviews/:reviewId", middleware.Authenticate(h.Reviews.DeleteReview))
}

func AddFaqRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/faqs", rl.Limit(h.Faqs.GetFAQs))
	router.POST("/api/faqs", middleware.Authenticate(h.Faqs.AddFAQ))
	router.PUT("/api/faqs/:faqId", middleware.Authenticate(h.Faqs.EditFAQ))
	router.DELETE("/api/faqs/:faqId", middleware.Authenticate(h.Faqs.DeleteFAQ))
}

func AddAssetRoutes(router *httprouter.Router, h *Handlers, rl *ratelim.RateLimiter) {
	router.GET("/api/assets", middleware.Authenticate(h.Assets.List))
	router.POST("/api/assets", middleware.Authenticate(h.Assets.Upload))
	router.DELETE("/api/assets/:id", middleware.Authenticate(h.Assets.Delete))
}
