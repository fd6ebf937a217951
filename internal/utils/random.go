package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/assistenzplus/backend/internal/domain"
)

var commonFirstNames = []string{
	"Anna", "Lukas", "Marie", "Jonas", "Lena", "Felix", "Laura", "Paul",
	"Sophie", "Max", "Julia", "Tim", "Sarah", "Jan", "Lisa", "David",
	"Katharina", "Niklas", "Hannah", "Tobias",
}

var commonLastNames = []string{
	"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer",
	"Wagner", "Becker", "Schulz", "Hoffmann", "Koch", "Bauer",
	"Richter", "Klein", "Wolf", "Schröder", "Neumann", "Schwarz",
	"Zimmermann", "Braun",
}

func GenerateRandomGermanName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue",
)

var digits = "0123456789"

// GenerateUsernameFromName builds a login like "a.mueller42" from a full
// name.
func GenerateUsernameFromName(fullName string) string {
	parts := strings.Fields(umlautReplacer.Replace(strings.ToLower(fullName)))
	username := ""
	if len(parts) >= 2 {
		username = parts[0][:1] + "." + parts[len(parts)-1]
	} else if len(parts) == 1 {
		username = parts[0]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomGermanName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:              username,
		PasswordHash:          string(passwordHash),
		FullName:              fullName,
		Email:                 username + "@" + emailDomainName,
		Role:                  domain.RoleEmployee,
		NightPremiumEnabled:   rand.Intn(2) == 0,
		SundayPremiumEnabled:  rand.Intn(2) == 0,
		HolidayPremiumEnabled: rand.Intn(2) == 0,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
