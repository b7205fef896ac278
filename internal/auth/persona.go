package auth

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

var avatarColors = []string{
	"1e40af", "7c3aed", "db2777", "dc2626", "ea580c",
	"d97706", "65a30d", "059669", "0891b2", "0284c7",
	"4f46e5", "7c2d12", "be123c", "9f1239", "a21caf",
}

// randomAvatarURL builds a DiceBear identicon URL with a random seed, used
// when a signup does not bring its own avatar.
func randomAvatarURL() string {
	seed := uuid.NewString()
	color := avatarColors[rand.Intn(len(avatarColors))]
	return fmt.Sprintf("https://api.dicebear.com/7.x/identicon/svg?seed=%s&backgroundColor=%s", seed, color)
}
