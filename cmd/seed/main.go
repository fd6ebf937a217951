package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/assistenzplus/backend/internal/config"
	"github.com/assistenzplus/backend/internal/repository"
	"github.com/assistenzplus/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var month int
	var year int

	flag.IntVar(&op, "op", 0, "operation (1: random users, 2: demo clients, 3: one month of shifts, 4: public holidays, 5: full demo dataset)")
	flag.IntVar(&n, "n", 5, "number of users to insert")
	flag.IntVar(&month, "month", int(time.Now().Month()), "month to seed")
	flag.IntVar(&year, "year", time.Now().Year(), "year to seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect yet, ping to verify the DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("could not connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
			return
		}
		seed.SeedUsers(repo, cfg, n)
	case 2:
		seed.SeedClients(repo)
	case 3:
		clients, err := repo.GetAllClients()
		if err != nil {
			slog.Error("could not load clients", slog.String("error", err.Error()))
			return
		}
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("could not load users", slog.String("error", err.Error()))
			return
		}
		seed.SeedMonth(repo, clients, users, month, year)
	case 4:
		seed.SeedHolidays(repo, cfg.HolidayRegion, year)
	case 5:
		seed.SeedDemoData(repo, cfg)
	default:
		slog.Error("unknown operation", slog.Int("op", op))
	}
}
