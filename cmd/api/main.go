package main

import (
	"context"
	"database/sql"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"huytran2000-hcmus/moviesinfo/internal/data"
	"huytran2000-hcmus/moviesinfo/internal/jsonlog"
	"huytran2000-hcmus/moviesinfo/internal/ratelimit"
	"huytran2000-hcmus/moviesinfo/internal/validator"
	"huytran2000-hcmus/moviesinfo/internal/vcs"
)

var version = vcs.Version()

type config struct {
	port int
	env  string
	db   struct {
		driver       string
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	limiter struct {
		enable    bool
		rps       float64
		burst     int
		redisAddr string
	}
	cors struct {
		trustedOrigins []string
	}
}

type application struct {
	logger  *jsonlog.Logger
	cfg     config
	models  data.Models
	limiter ratelimit.Limiter
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.InfoLevel)

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FatalErr(fmt.Errorf("load .env: %w", err), nil)
	}

	var cfg config
	flag.IntVar(&cfg.port, "port", envInt("MOVIESINFO_PORT", 5000), "API server's port")
	flag.StringVar(&cfg.env, "env", envString("MOVIESINFO_ENV", "development"), "Enviroment (development|staging|production)")

	flag.StringVar(&cfg.db.driver, "db-driver", envString("MOVIESINFO_DB_DRIVER", "postgres"), "Database driver (postgres|mysql|memory)")
	flag.StringVar(&cfg.db.dsn, "dsn", os.Getenv("MOVIESINFO_DB_DSN"), "Database data source name")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "Database max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "Database max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m", "Database max connection idle time")

	flag.BoolVar(&cfg.limiter.enable, "limiter-enabled", true, "Enable rate limiter")
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.StringVar(&cfg.limiter.redisAddr, "redis-addr", os.Getenv("MOVIESINFO_REDIS_ADDR"), "Redis address for a shared rate limiter (empty keeps it in memory)")

	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	displayVersion := flag.Bool("version", false, "Display version and exit")
	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	err = validateConfig(cfg)
	if err != nil {
		logger.FatalErr(err, nil)
	}

	app := &application{
		logger: logger,
		cfg:    cfg,
	}

	if cfg.db.driver == "memory" {
		app.models = data.NewMemoryModels()
	} else {
		db, err := openDB(cfg)
		if err != nil {
			logger.FatalErr(err, nil)
		}
		defer db.Close()

		logger.Info("database connection pool established", map[string]string{
			"driver": cfg.db.driver,
		})

		dialect := data.Dialect(cfg.db.driver)
		err = data.CreateSchema(db, dialect)
		if err != nil {
			logger.FatalErr(err, nil)
		}

		app.models = data.NewModels(db, dialect)

		expvar.Publish("database", expvar.Func(func() any {
			return db.Stats()
		}))
	}

	if cfg.limiter.enable {
		if cfg.limiter.redisAddr != "" {
			rdb, err := openRedis(cfg.limiter.redisAddr)
			if err != nil {
				logger.FatalErr(err, nil)
			}
			defer rdb.Close()

			app.limiter = ratelimit.NewRedis(rdb, cfg.limiter.rps, cfg.limiter.burst)
		} else {
			app.limiter = ratelimit.NewMemory(cfg.limiter.rps, cfg.limiter.burst)
		}
	}

	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	err = app.serve()
	if err != nil {
		logger.FatalErr(err, nil)
	}
}

func validateConfig(cfg config) error {
	v := validator.New()
	v.CheckError(validator.PermittedValue(cfg.env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.CheckError(validator.PermittedValue(cfg.db.driver, "postgres", "mysql", "memory"), "db-driver", "must be postgres, mysql or memory")
	v.CheckError(cfg.db.driver == "memory" || cfg.db.dsn != "", "dsn", "must be provided")
	v.CheckError(cfg.limiter.rps > 0, "limiter-rps", "must be greater than zero")
	v.CheckError(cfg.limiter.burst > 0, "limiter-burst", "must be greater than zero")

	if v.IsValid() {
		return nil
	}

	problems := make([]string, 0, len(v.Errors))
	for key, msg := range v.Errors {
		problems = append(problems, fmt.Sprintf("-%s %s", key, msg))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func openDB(cfg config) (*sql.DB, error) {
	dialect, err := data.ParseDialect(cfg.db.driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(dialect), cfg.db.dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)

	idleDuration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, fmt.Errorf("max idle time parsing: %w", err)
	}
	db.SetConnMaxIdleTime(idleDuration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}

func openRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

func envString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}

func envInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return n
}
