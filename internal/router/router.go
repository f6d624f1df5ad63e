package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tmendes/go-smartcity-services/internal/api/atm"
	"github.com/tmendes/go-smartcity-services/internal/api/attraction"
	"github.com/tmendes/go-smartcity-services/internal/api/auth"
	"github.com/tmendes/go-smartcity-services/internal/api/booking"
	"github.com/tmendes/go-smartcity-services/internal/api/business"
	"github.com/tmendes/go-smartcity-services/internal/api/education"
	"github.com/tmendes/go-smartcity-services/internal/api/hotel"
	"github.com/tmendes/go-smartcity-services/internal/api/job"
	"github.com/tmendes/go-smartcity-services/internal/api/restaurant"
	"github.com/tmendes/go-smartcity-services/internal/api/theatre"
	"github.com/tmendes/go-smartcity-services/internal/api/user"
	"github.com/tmendes/go-smartcity-services/internal/types"
)

// PublicPrefixes lists the route prefixes the request gate skips
// entirely. Everything else gets an identity resolution attempt.
var PublicPrefixes = []string{"/api/v1/auth/", "/ping", "/metrics", "/docs"}

// Config carries the handlers and middleware the router wires together.
type Config struct {
	Logger *slog.Logger

	AuthHandler       *auth.AuthHandler
	UserHandler       *user.HandlerImpl
	HotelHandler      *hotel.HandlerImpl
	RestaurantHandler *restaurant.HandlerImpl
	TheatreHandler    *theatre.HandlerImpl
	AttractionHandler *attraction.HandlerImpl
	ATMHandler        *atm.HandlerImpl
	BookingHandler    *booking.HandlerImpl
	BusinessHandler   *business.HandlerImpl
	JobHandler        *job.HandlerImpl
	EducationHandler  *education.HandlerImpl

	// Authenticate resolves an identity on every request and never
	// rejects by itself. RequireAuth / RequireRole do the rejecting.
	Authenticate func(http.Handler) http.Handler
}

// SetupRouter builds the full application router. Server-wide middleware
// (request ID, logging, recoverer) is applied before mounting this in main.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to the Smart City Services API"))
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cfg.Authenticate)

		// Public auth routes. Credential endpoints are rate limited
		// per client IP.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(20, 1*time.Minute))
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		})
		r.Post("/auth/refresh-token", cfg.AuthHandler.RefreshToken)
		r.Post("/auth/logout", cfg.AuthHandler.Logout)

		// Booking surface is reserved for tourists.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(cfg.Logger, types.RoleTourist))

			r.Post("/hotel-bookings", cfg.BookingHandler.BookHotel)
			r.Get("/hotel-bookings", cfg.BookingHandler.ListHotelBookings)
			r.Delete("/hotel-bookings/{bookingID}", cfg.BookingHandler.CancelHotelBooking)

			r.Post("/restaurant-reservations", cfg.BookingHandler.ReserveRestaurant)
			r.Get("/restaurant-reservations", cfg.BookingHandler.ListRestaurantReservations)
			r.Delete("/restaurant-reservations/{reservationID}", cfg.BookingHandler.CancelRestaurantReservation)

			r.Post("/theatre-bookings", cfg.BookingHandler.BookTheatre)
			r.Get("/theatre-bookings", cfg.BookingHandler.ListTheatreBookings)
			r.Delete("/theatre-bookings/{bookingID}", cfg.BookingHandler.CancelTheatreBooking)
		})

		// Everything else needs an authenticated identity. Mutations
		// are additionally admin-gated inside the handlers.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(cfg.Logger))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", cfg.UserHandler.ListUsers)
				r.Post("/", cfg.UserHandler.CreateUser)
				r.Get("/me", cfg.UserHandler.GetMe)
				r.Get("/{userID}", cfg.UserHandler.GetUser)
				r.Put("/{userID}", cfg.UserHandler.UpdateUser)
				r.Delete("/{userID}", cfg.UserHandler.DeleteUser)
			})

			r.Route("/tourist-profiles", func(r chi.Router) {
				r.Get("/", cfg.UserHandler.ListTouristProfiles)
				r.Put("/me", cfg.UserHandler.UpdateMyTouristProfile)
				r.Get("/{userID}", cfg.UserHandler.GetTouristProfile)
				r.Put("/{userID}", cfg.UserHandler.UpdateTouristProfile)
			})

			r.Route("/hotels", func(r chi.Router) {
				r.Get("/", cfg.HotelHandler.ListHotels)
				r.Post("/", cfg.HotelHandler.CreateHotel)
				r.Get("/{hotelID}", cfg.HotelHandler.GetHotel)
				r.Put("/{hotelID}", cfg.HotelHandler.UpdateHotel)
				r.Delete("/{hotelID}", cfg.HotelHandler.DeleteHotel)
			})

			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", cfg.RestaurantHandler.ListRestaurants)
				r.Post("/", cfg.RestaurantHandler.CreateRestaurant)
				r.Get("/{restaurantID}", cfg.RestaurantHandler.GetRestaurant)
				r.Put("/{restaurantID}", cfg.RestaurantHandler.UpdateRestaurant)
				r.Delete("/{restaurantID}", cfg.RestaurantHandler.DeleteRestaurant)
			})

			r.Route("/theatres", func(r chi.Router) {
				r.Get("/", cfg.TheatreHandler.ListTheatres)
				r.Post("/", cfg.TheatreHandler.CreateTheatre)
				r.Get("/{theatreID}", cfg.TheatreHandler.GetTheatre)
				r.Put("/{theatreID}", cfg.TheatreHandler.UpdateTheatre)
				r.Delete("/{theatreID}", cfg.TheatreHandler.DeleteTheatre)
			})

			r.Route("/attractions", func(r chi.Router) {
				r.Get("/", cfg.AttractionHandler.ListAttractions)
				r.Post("/", cfg.AttractionHandler.CreateAttraction)
				r.Get("/{attractionID}", cfg.AttractionHandler.GetAttraction)
				r.Put("/{attractionID}", cfg.AttractionHandler.UpdateAttraction)
				r.Delete("/{attractionID}", cfg.AttractionHandler.DeleteAttraction)
			})

			r.Route("/atms", func(r chi.Router) {
				r.Get("/", cfg.ATMHandler.ListATMs)
				r.Post("/", cfg.ATMHandler.CreateATM)
				r.Get("/{atmID}", cfg.ATMHandler.GetATM)
				r.Put("/{atmID}", cfg.ATMHandler.UpdateATM)
				r.Delete("/{atmID}", cfg.ATMHandler.DeleteATM)
			})

			r.Route("/businesses", func(r chi.Router) {
				r.Get("/", cfg.BusinessHandler.ListBusinesses)
				r.Post("/", cfg.BusinessHandler.CreateBusiness)
				r.Get("/{businessID}", cfg.BusinessHandler.GetBusiness)
				r.Put("/{businessID}", cfg.BusinessHandler.UpdateBusiness)
				r.Delete("/{businessID}", cfg.BusinessHandler.DeleteBusiness)
			})

			r.Route("/business-news", func(r chi.Router) {
				r.Get("/", cfg.BusinessHandler.ListNews)
				r.Post("/", cfg.BusinessHandler.CreateNews)
				r.Get("/{newsID}", cfg.BusinessHandler.GetNews)
				r.Put("/{newsID}", cfg.BusinessHandler.UpdateNews)
				r.Delete("/{newsID}", cfg.BusinessHandler.DeleteNews)
			})

			r.Route("/business-centers", func(r chi.Router) {
				r.Get("/", cfg.BusinessHandler.ListCenters)
				r.Post("/", cfg.BusinessHandler.CreateCenter)
				r.Get("/search", cfg.BusinessHandler.SearchCenters)
				r.Get("/{centerID}", cfg.BusinessHandler.GetCenter)
				r.Put("/{centerID}", cfg.BusinessHandler.UpdateCenter)
				r.Delete("/{centerID}", cfg.BusinessHandler.DeleteCenter)
			})

			r.Route("/industries", func(r chi.Router) {
				r.Get("/", cfg.JobHandler.ListIndustries)
				r.Post("/", cfg.JobHandler.CreateIndustry)
				r.Get("/{industryID}", cfg.JobHandler.GetIndustry)
				r.Put("/{industryID}", cfg.JobHandler.UpdateIndustry)
				r.Delete("/{industryID}", cfg.JobHandler.DeleteIndustry)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", cfg.JobHandler.ListCompanies)
				r.Post("/", cfg.JobHandler.CreateCompany)
				r.Get("/{companyID}", cfg.JobHandler.GetCompany)
				r.Put("/{companyID}", cfg.JobHandler.UpdateCompany)
				r.Delete("/{companyID}", cfg.JobHandler.DeleteCompany)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", cfg.JobHandler.ListJobListings)
				r.Post("/", cfg.JobHandler.CreateJobListing)
				r.Get("/{jobID}", cfg.JobHandler.GetJobListing)
				r.Put("/{jobID}", cfg.JobHandler.UpdateJobListing)
				r.Delete("/{jobID}", cfg.JobHandler.DeleteJobListing)
			})

			r.Route("/universities", func(r chi.Router) {
				r.Get("/", cfg.EducationHandler.ListUniversities)
				r.Post("/", cfg.EducationHandler.CreateUniversity)
				r.Get("/{universityID}", cfg.EducationHandler.GetUniversity)
				r.Put("/{universityID}", cfg.EducationHandler.UpdateUniversity)
				r.Delete("/{universityID}", cfg.EducationHandler.DeleteUniversity)
			})

			r.Route("/libraries", func(r chi.Router) {
				r.Get("/", cfg.EducationHandler.ListLibraries)
				r.Post("/", cfg.EducationHandler.CreateLibrary)
				r.Get("/{libraryID}", cfg.EducationHandler.GetLibrary)
				r.Put("/{libraryID}", cfg.EducationHandler.UpdateLibrary)
				r.Delete("/{libraryID}", cfg.EducationHandler.DeleteLibrary)
			})

			r.Route("/colleges", func(r chi.Router) {
				r.Get("/", cfg.EducationHandler.ListColleges)
				r.Post("/", cfg.EducationHandler.CreateCollege)
				r.Get("/search", cfg.EducationHandler.SearchColleges)
				r.Get("/{collegeID}", cfg.EducationHandler.GetCollege)
				r.Put("/{collegeID}", cfg.EducationHandler.UpdateCollege)
				r.Delete("/{collegeID}", cfg.EducationHandler.DeleteCollege)
			})

			r.Route("/coaching-centers", func(r chi.Router) {
				r.Get("/", cfg.EducationHandler.ListCoachingCenters)
				r.Post("/", cfg.EducationHandler.CreateCoachingCenter)
				r.Get("/search", cfg.EducationHandler.SearchCoachingCenters)
				r.Get("/{centerID}", cfg.EducationHandler.GetCoachingCenter)
				r.Put("/{centerID}", cfg.EducationHandler.UpdateCoachingCenter)
				r.Delete("/{centerID}", cfg.EducationHandler.DeleteCoachingCenter)
			})
		})
	})

	return r
}
