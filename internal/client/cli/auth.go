package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/loveletters/internal/common"
)

// Indirections over the interactive helpers, swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
)

func (a *App) credentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Register(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are logged in.\n", user.UserName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.UserName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	user, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	printUser(a.out, user)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.auth.Users(ctx)
	if err != nil {
		return err
	}
	printUsers(a.out, users)
	return nil
}
