package routes

import (
	"net/http"

	"evenza/affiliates"
	"evenza/analytics"
	"evenza/attendees"
	"evenza/discounts"
	"evenza/events"
	"evenza/forms"
	"evenza/live"
	"evenza/merch"
	"evenza/middleware"
	"evenza/payouts"
	"evenza/ratelim"
	"evenza/referrals"
	"evenza/uploads"
	"evenza/utils"

	"github.com/julienschmidt/httprouter"
)

// NewRouter builds the router with a fixed JSON body for 405s, so that any
// disallowed method on a route (e.g. GET /api/event/one) gets the same shape.
func NewRouter() *httprouter.Router {
	router := httprouter.New()
	router.HandleMethodNotAllowed = true
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusMethodNotAllowed, utils.M{
			"error":   "method_not_allowed",
			"message": "This method is not supported on this route",
		})
	})
	return router
}

func AddEventRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/event/one", rl.Limit(middleware.Authenticate(events.CreateEventHandler)))

	router.GET("/api/events", middleware.Authenticate(events.GetEvents))
	router.GET("/api/events/:eventid", middleware.Authenticate(events.GetEvent))
	router.PUT("/api/events/:eventid", rl.Limit(middleware.Authenticate(events.EditEvent)))

	router.GET("/api/public/events", events.GetPublicEvents)
	router.GET("/api/public/events/:slug", events.GetPublicEvent)
}

func AddAffiliateRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/affiliates/:affiliateid/verify", rl.Limit(middleware.Authenticate(affiliates.VerifyAffiliate)))
}

func AddDashboardRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events/:eventid/attendees", middleware.Authenticate(attendees.GetAttendees))
	router.PUT("/api/events/:eventid/attendees/:attendeeid/checkin", middleware.Authenticate(attendees.ToggleCheckIn))
	router.GET("/api/events/:eventid/attendees/:attendeeid/pass", middleware.Authenticate(attendees.DownloadPass))

	router.GET("/api/events/:eventid/discounts", middleware.Authenticate(discounts.GetDiscounts))
	router.POST("/api/events/:eventid/discounts", rl.Limit(middleware.Authenticate(discounts.CreateDiscount)))
	router.PUT("/api/events/:eventid/discounts/:discountid/toggle", middleware.Authenticate(discounts.ToggleDiscount))
	router.DELETE("/api/events/:eventid/discounts/:discountid", middleware.Authenticate(discounts.DeleteDiscount))

	router.GET("/api/events/:eventid/referrals", middleware.Authenticate(referrals.GetReferrals))
	router.POST("/api/events/:eventid/referrals", rl.Limit(middleware.Authenticate(referrals.CreateReferral)))
	router.PUT("/api/events/:eventid/referrals/:referralid/toggle", middleware.Authenticate(referrals.ToggleReferral))
	router.DELETE("/api/events/:eventid/referrals/:referralid", middleware.Authenticate(referrals.DeleteReferral))

	router.GET("/api/events/:eventid/merch", middleware.Authenticate(merch.GetMerch))
	router.POST("/api/events/:eventid/merch", rl.Limit(middleware.Authenticate(merch.CreateMerch)))
	router.PUT("/api/events/:eventid/merch/:merchid", middleware.Authenticate(merch.EditMerch))
	router.DELETE("/api/events/:eventid/merch/:merchid", middleware.Authenticate(merch.DeleteMerch))

	router.GET("/api/events/:eventid/payouts", middleware.Authenticate(payouts.GetPayouts))
	router.POST("/api/events/:eventid/payouts/requests", rl.Limit(middleware.Authenticate(payouts.RequestPayout)))

	router.GET("/api/events/:eventid/questions", middleware.Authenticate(forms.GetQuestions))
	router.POST("/api/events/:eventid/questions", rl.Limit(middleware.Authenticate(forms.CreateQuestion)))
	router.DELETE("/api/events/:eventid/questions/:questionid", middleware.Authenticate(forms.DeleteQuestion))
	router.GET("/api/events/:eventid/responses", middleware.Authenticate(forms.GetResponses))

	router.GET("/api/events/:eventid/stats", middleware.Authenticate(analytics.GetEventStats))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/analytics", middleware.Authenticate(analytics.GetCreationCounters))
}

func AddUploadRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/uploads/images", rl.Limit(middleware.Authenticate(uploads.UploadImages)))
	router.GET("/api/uploads/:taskid", middleware.Authenticate(uploads.GetUploadStatus))
	router.DELETE("/api/uploads/:taskid", middleware.Authenticate(uploads.CancelUpload))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/events/:eventid/live", live.WebSocketHandler(hub))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/eventpic/*filepath", http.Dir("static/eventpic"))
	router.ServeFiles("/static/collectionpic/*filepath", http.Dir("static/collectionpic"))
	router.ServeFiles("/static/verificationpic/*filepath", http.Dir("static/verificationpic"))
	router.ServeFiles("/static/listingpic/*filepath", http.Dir("static/listingpic"))
}
