package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/assistenzplus/backend/internal/config"
	"github.com/assistenzplus/backend/internal/domain"
	"github.com/assistenzplus/backend/internal/payroll"
	"github.com/assistenzplus/backend/internal/repository"
	"github.com/assistenzplus/backend/internal/utils"
)

var demoClients = []domain.Client{
	{Name: "Familie Berger", Email: "berger@example.org", SheetFileName: "berger", Address: "Ahornweg 3, 44135 Dortmund"},
	{Name: "Herr Krause", Email: "krause@example.org", SheetFileName: "krause", Address: "Lindenstr. 18, 45127 Essen"},
	{Name: "Frau Vogel", Email: "vogel@example.org", SheetFileName: "vogel", Address: "Kastanienallee 7, 50667 Köln"},
}

// shift patterns a personal assistance service typically runs
var shiftPatterns = [][2]string{
	{"08:00", "16:00"},
	{"16:00", "00:00"},
	{"22:00", "07:00"},
	{"00:00", "00:00"}, // 24h care
}

func SeedClients(repo *repository.Repository) []*domain.Client {
	clients := make([]*domain.Client, 0, len(demoClients))
	for _, c := range demoClients {
		client := c
		if err := repo.CreateClient(&client); err != nil {
			slog.Error("could not insert client", "name", client.Name, "error", err)
			continue
		}
		clients = append(clients, &client)
	}
	slog.Info("clients inserted", "count", len(clients))
	return clients
}

func SeedUsers(repo *repository.Repository, cfg *config.Config, n int) []*domain.User {
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("could not generate user", "error", err)
			continue
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("could not insert user", "username", user.Username, "error", err)
			continue
		}
		users = append(users, user)
	}
	slog.Info("users inserted", "count", len(users))
	return users
}

// SeedMonth plans one month of shifts: every client gets one shift per day,
// rotated over the employees. A few shifts carry absences so the payroll
// counters have something to show.
func SeedMonth(repo *repository.Repository, clients []*domain.Client, employees []*domain.User, month, year int) {
	if len(clients) == 0 || len(employees) == 0 {
		slog.Error("need at least one client and one employee")
		return
	}

	days := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	count := 0

	for ci, client := range clients {
		for day := 1; day <= days; day++ {
			employee := employees[(ci+day)%len(employees)]
			pattern := shiftPatterns[(ci+day)%len(shiftPatterns)]

			shift := &domain.Shift{
				ClientID:     client.ID,
				EmployeeID:   employee.ID,
				Date:         time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
				PlannedStart: pattern[0],
				PlannedEnd:   pattern[1],
			}

			if rand.Intn(20) == 0 {
				absence := domain.AbsenceSick
				if rand.Intn(2) == 0 {
					absence = domain.AbsenceVacation
				}
				shift.AbsenceType = &absence
				backup := employees[(ci+day+1)%len(employees)]
				if backup.ID != employee.ID {
					shift.BackupEmployeeID = &backup.ID
				}
			}

			if err := repo.CreateShift(shift); err != nil {
				slog.Error("could not insert shift", "client", client.Name, "date", shift.Date, "error", err)
				continue
			}
			count++
		}
	}

	slog.Info("shifts inserted", "count", count, "month", fmt.Sprintf("%02d/%d", month, year))
}

func SeedHolidays(repo *repository.Repository, region string, year int) {
	count := 0
	for _, ph := range payroll.HolidaysNRW(year) {
		holiday := &domain.Holiday{
			Date:   ph.Date,
			Name:   ph.Name,
			Region: region,
		}
		if err := repo.CreateHoliday(holiday); err != nil {
			slog.Error("could not insert holiday", "name", ph.Name, "error", err)
			continue
		}
		count++
	}
	slog.Info("holidays inserted", "count", count, "year", year)
}

// SeedDemoData fills an empty database with a complete demo dataset for the
// current month.
func SeedDemoData(repo *repository.Repository, cfg *config.Config) {
	now := time.Now()

	clients := SeedClients(repo)
	users := SeedUsers(repo, cfg, 8)
	SeedHolidays(repo, cfg.HolidayRegion, now.Year())
	SeedMonth(repo, clients, users, int(now.Month()), now.Year())
}
