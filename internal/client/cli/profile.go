package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vpopov/authgate/internal/client/api"
)

// Profile fetches and prints the profile of the current session's user.
// An expired or otherwise rejected token clears the local session so the
// prompt reflects reality.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in")
		return nil
	}

	user, err := a.api.Profile(ctx, a.accessToken)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Session is no longer valid, please log in again")
			a.accessToken = ""
			a.userName = ""
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	fmt.Printf("ID:         %s\n", user.ID)
	fmt.Printf("Email:      %s\n", user.Email)
	fmt.Printf("Username:   %s\n", user.Username)
	fmt.Printf("First name: %s\n", user.FirstName)
	fmt.Printf("Last name:  %s\n", user.LastName)
	return nil
}
