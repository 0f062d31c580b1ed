package utils

import (
	"fmt"
	"math/rand"
)

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var digits = "0123456789"

// GenerateStaffNumber makes a seed staff number like "CD2471".
func GenerateStaffNumber() string {
	number := make([]byte, 4)
	for i := range number {
		number[i] = digits[rand.Intn(len(digits))]
	}
	return "CD" + string(number)
}
