package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/vpopov/authgate/internal/client/api"
	"github.com/vpopov/authgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and attempts to create a new account.
//
// On success the issued access token is kept for the session and the user is
// logged in immediately. The password byte slice is wiped before returning.
// The server rejects duplicate emails and usernames with a generic
// unauthorized response; that is reported as "registration rejected" because
// the client cannot tell which field collided.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	firstName, err := getSimpleText(a.reader, "Enter first name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Enter last name (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.api.Register(ctx, email, username, string(password), firstName, lastName)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Registration rejected")
		} else {
			log.Printf("Registration failed: %s", err.Error())
		}
		return err
	}

	a.accessToken = resp.AccessToken
	a.userName = resp.User.Username
	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and tries to authenticate.
//
// On success the issued access token is kept for the session. A rejected
// login is reported without detail; the server does not reveal whether the
// username or the password was wrong. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			log.Printf("Login unsuccessfull")
		} else {
			log.Printf("Login failed: %s", err.Error())
		}
		return err
	}

	a.accessToken = resp.AccessToken
	a.userName = resp.User.Username
	log.Printf("Login successfull")
	return nil
}

// Logout forgets the in-memory session token. The server keeps no session
// state, so there is nothing to revoke remotely.
func (a *App) Logout(ctx context.Context) error {
	a.accessToken = ""
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}
