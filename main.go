package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/powerman/structlog"

	"micropipe/internal/auth"
	"micropipe/internal/calc/batch"
	"micropipe/internal/calc/charge"
	"micropipe/internal/calc/doubleriser"
	"micropipe/internal/calc/importer"
	"micropipe/internal/calc/massflow"
	"micropipe/internal/calc/ptconv"
	"micropipe/internal/calc/report"
	"micropipe/internal/calc/sizing"
	"micropipe/internal/config"
	"micropipe/internal/pipes"
	"micropipe/internal/project"
	"micropipe/internal/props"
	"micropipe/internal/repo"
)

var (
	log = structlog.New()
	wg  sync.WaitGroup
)

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	table, err := props.Load()
	if err != nil {
		log.Fatal(err)
	}
	catalog, err := pipes.LoadCatalog()
	if err != nil {
		log.Fatal(err)
	}
	ratings, err := pipes.LoadRatings()
	if err != nil {
		log.Fatal(err)
	}
	eqlen, err := pipes.LoadEquivalentLengths(catalog)
	if err != nil {
		log.Fatal(err)
	}

	cfgPath := os.Getenv("SIZING_CONFIG")
	if cfgPath == "" {
		cfgPath = "sizing.yaml"
	}
	cfg, err := config.LoadSizing(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	conv := props.NewConverter(table)
	engine := sizing.New(table, conv, catalog, eqlen, ratings, cfg)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	store := repo.NewPostgres(db)
	authEnv := &auth.Env{JWTKey: []byte(tokenKey), Repo: store}
	projectH := &project.Handler{Repo: store}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	massflowH := &massflow.Handler{Calc: massflow.New(table)}
	sizingH := &sizing.Handler{Engine: engine}
	chargeH := &charge.Handler{Calc: charge.New(table, catalog)}
	ptconvH := &ptconv.Handler{Conv: conv}
	doubleRiserH := &doubleriser.Handler{Calc: doubleriser.New(table, conv, catalog, eqlen, cfg)}
	batchH := &batch.Handler{Engine: engine}
	importerH := &importer.Handler{Engine: engine}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/massflow/calc", massflowH.CalcHTTP).Methods("POST")
	secureApi.HandleFunc("/tools/sizing/calc", sizingH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/charge/calc", chargeH.CalcHTTP).Methods("POST")
	secureApi.HandleFunc("/tools/double-riser/calc", doubleRiserH.CalcHTTP).Methods("POST")
	secureApi.HandleFunc("/tools/ptconv/pressure", ptconvH.PressureAt).Methods("POST")
	secureApi.HandleFunc("/tools/ptconv/temperature", ptconvH.TemperatureAt).Methods("POST")
	secureApi.HandleFunc("/tools/ptconv/penalty", ptconvH.Penalty).Methods("POST")
	secureApi.HandleFunc("/tools/batch/calc", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/import/circuits", importerH.Circuits).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.GeneratePDF).Methods("POST")
	secureApi.HandleFunc("/tools/report/xlsx", reportH.GenerateXLSX).Methods("POST")

	secureApi.HandleFunc("/projects", projectH.List).Methods("GET")
	secureApi.HandleFunc("/projects", projectH.Save).Methods("POST")
	secureApi.HandleFunc("/projects/{name}", projectH.Load).Methods("GET")
	secureApi.HandleFunc("/projects/{name}", projectH.Delete).Methods("DELETE")

	mainFileServer := http.FileServer(http.Dir("./static/main"))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, relying on environment")
	}

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	HandleList(mux, db)
	handler := CORS(mux)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	log.Info("starting server", "addr", addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.PrintErr("server error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown: ", err)
	}
	log.Info("server stopped")

	wg.Wait()
}
