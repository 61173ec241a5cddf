package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Register(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	user, err := a.client.Register(ctx, userName, email, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Registered %s, now log in\n", user.Username)
}

func (a *App) Login(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	user, err := a.client.Login(ctx, userName, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userName = user.Username
	a.saveSession()

	fmt.Printf("Logged in as %s\n", user.Username)
}

// Logout drops the session locally. Tokens are not revocable server-side,
// they simply expire.
func (a *App) Logout(ctx context.Context) {
	a.client.Logout()
	a.userName = ""
	a.saveSession()
	fmt.Println("Logged out")
}

func (a *App) WhoAmI(ctx context.Context) {
	switch {
	case a.userName != "":
		fmt.Println(a.userName)
	case a.isLoggedIn():
		fmt.Println("session restored from token file (log in again to see the user name)")
	default:
		fmt.Println("not logged in")
	}
}
