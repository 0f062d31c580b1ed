package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/crewdeck-dev/crewdeck/backend/internal/domain"
	"github.com/crewdeck-dev/crewdeck/backend/internal/repository"
	"github.com/crewdeck-dev/crewdeck/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alex", "Ben", "Clara", "Daan", "Emma", "Finn", "Greta", "Hugo",
	"Ines", "Jonas", "Katja", "Lars", "Mila", "Nora", "Otto", "Petra",
}
var lastNames = []string{
	"Andersen", "Bakker", "Christensen", "Dahl", "Eriksen", "Fischer",
	"Gruber", "Hansen", "Iversen", "Jansen", "Keller", "Larsen",
}

var stations = []string{"AMS", "CPH", "FRA", "LHR", "OSL", "ARN", "CDG", "MAD", "FCO", "VIE"}

// CreateRandomCrew inserts n crew members sharing the seed password.
func CreateRandomCrew(r *repository.Repository, seedPassword string, n int) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash the seed password", "error", err)
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		staffNumber := utils.GenerateStaffNumber()
		fullName := firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]

		user := &domain.User{
			Username:     staffNumber,
			PasswordHash: string(passwordHash),
			FullName:     fullName,
			Email:        strings.ToLower(staffNumber) + "@example.test",
			Role:         domain.RoleCrew,
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("failed to insert crew member", "error", err)
			continue
		}
		cnt++
	}

	slog.Info("crew members inserted", "count", cnt)
}

// CreateRandomDuties inserts n duties with legs for every crew member over
// the coming weeks.
func CreateRandomDuties(r *repository.Repository, n int) {
	users, err := r.GetAllUsers()
	if err != nil {
		slog.Error("failed to list users", "error", err)
		return
	}

	cnt := 0
	for _, user := range users {
		if user.Role != domain.RoleCrew {
			continue
		}

		for i := 0; i < n; i++ {
			day := time.Now().UTC().AddDate(0, 0, rand.Intn(28)+1)
			date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

			duty := &domain.Duty{
				UserID:  &user.ID,
				Date:    date,
				Pairing: fmt.Sprintf("P%04d", rand.Intn(10000)),
				Legs:    randomLegs(date),
			}
			if err := r.InsertDutyWithLegs(duty); err != nil {
				slog.Error("failed to insert duty", "error", err)
				continue
			}
			cnt++
		}
	}

	slog.Info("duties inserted", "count", cnt)
}

func randomLegs(date time.Time) []domain.FlightLeg {
	legCount := rand.Intn(3) + 1
	legs := make([]domain.FlightLeg, 0, legCount)

	dep := stations[rand.Intn(len(stations))]
	depTime := date.Add(time.Duration(6+rand.Intn(4)) * time.Hour)

	for i := 0; i < legCount; i++ {
		arr := stations[rand.Intn(len(stations))]
		for arr == dep {
			arr = stations[rand.Intn(len(stations))]
		}
		arrTime := depTime.Add(time.Duration(60+rand.Intn(180)) * time.Minute)

		legs = append(legs, domain.FlightLeg{
			FlightNumber:      fmt.Sprintf("CD%d", 100+rand.Intn(900)),
			DepartureTime:     depTime,
			ArrivalTime:       arrTime,
			DepartureLocation: dep,
			ArrivalLocation:   arr,
			IsDeadhead:        rand.Intn(10) == 0,
		})

		dep = arr
		depTime = arrTime.Add(time.Duration(45+rand.Intn(90)) * time.Minute)
	}

	return legs
}
