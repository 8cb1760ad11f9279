package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"scootershare/internal/api"
	"scootershare/internal/auth"
	"scootershare/internal/repository"
	"scootershare/internal/service"
)

func main() {
	godotenv.Load()
	log.SetFormatter(&log.JSONFormatter{})

	store, cleanup := openStore()
	defer cleanup()

	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(store, sender)
	maintenanceSvc := service.NewMaintenanceService(store)
	fleetSvc := service.NewFleetService(store)
	customerSvc := service.NewCustomerService(store)
	usageSvc := service.NewUsageService(store)
	jobSvc := service.NewJobService(store)

	bookingHandler := api.NewBookingHandler(bookingSvc, fleetSvc)
	maintenanceHandler := api.NewMaintenanceHandler(maintenanceSvc)
	adminHandler := api.NewAdminHandler(fleetSvc, customerSvc, usageSvc)

	c := cron.New()
	if _, err := c.AddFunc("@every 5m", jobSvc.Sweep); err != nil {
		log.WithError(err).Fatal("registering cleanup job")
	}
	c.Start()
	defer c.Stop()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/scooters", bookingHandler.ListScooters).Methods("GET")
	r.HandleFunc("/api/scooters/search", bookingHandler.SearchScooters).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.ListBookings).Methods("GET")
	r.HandleFunc("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")
	r.HandleFunc("/api/customers/{id}/history", adminHandler.CustomerHistory).Methods("GET")
	r.HandleFunc("/api/issues", maintenanceHandler.ReportIssue).Methods("POST")
	r.HandleFunc("/api/issues", maintenanceHandler.ListIssues).Methods("GET")
	r.HandleFunc("/api/issues/{id}", maintenanceHandler.GetIssue).Methods("GET")
	r.HandleFunc("/api/issues/{id}/status", maintenanceHandler.UpdateIssueStatus).Methods("PUT")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/scooters", adminHandler.ListScooters).Methods("GET")
	admin.HandleFunc("/scooters", adminHandler.CreateScooter).Methods("POST")
	admin.HandleFunc("/scooters/{id}", adminHandler.GetScooter).Methods("GET")
	admin.HandleFunc("/scooters/{id}", adminHandler.UpdateScooter).Methods("PUT")
	admin.HandleFunc("/scooters/{id}", adminHandler.DeleteScooter).Methods("DELETE")
	admin.HandleFunc("/customers", adminHandler.ListCustomers).Methods("GET")
	admin.HandleFunc("/customers", adminHandler.CreateCustomer).Methods("POST")
	admin.HandleFunc("/customers/{id}", adminHandler.GetCustomer).Methods("GET")
	admin.HandleFunc("/customers/{id}", adminHandler.UpdateCustomer).Methods("PUT")
	admin.HandleFunc("/customers/{id}", adminHandler.DeleteCustomer).Methods("DELETE")
	admin.HandleFunc("/customers/{id}/topup", adminHandler.TopUpCustomer).Methods("POST")
	admin.HandleFunc("/usage", adminHandler.SearchUsage).Methods("GET")
	admin.HandleFunc("/usage", adminHandler.RecordUsage).Methods("POST")
	admin.HandleFunc("/usage/export", adminHandler.ExportUsage).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server listening")
	log.Fatal(http.ListenAndServe(":"+port, handlers.RecoveryHandler()(cors(r))))
}

// openStore connects to Postgres when DATABASE_URL is set, and falls back
// to the seeded in-memory store for local runs and demos.
func openStore() (*repository.Store, func()) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Info("DATABASE_URL not set, using seeded in-memory store")
		return repository.NewSeededMemoryStore(), func() {}
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.WithError(err).Fatal("opening database")
	}
	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	return repository.NewPostgresStore(db), func() { db.Close() }
}
