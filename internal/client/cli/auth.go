package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/devmarket/internal/client/accounts"
	"github.com/dmitrijs2005/devmarket/internal/common"
)

var errEmptyUsername = errors.New("username must not be empty")

// Register prompts for a username, password and optional contact details and
// creates the account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, err := a.ask("Enter username")
	if err != nil {
		return err
	}
	if userName == "" {
		return errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email, err := a.ask("Enter email (optional)")
	if err != nil {
		return err
	}
	nickname, err := a.ask("Enter nickname (optional)")
	if err != nil {
		return err
	}

	resp, err := a.accounts.Register(ctx, accounts.RegisterRequest{
		Username: userName,
		Password: string(password),
		Email:    email,
		Nickname: nickname,
	})
	if err != nil {
		return err
	}

	success(a.out, "Registered %s (id %d). Type 'login' to sign in.", resp.User.Username, resp.User.ID)
	return nil
}

// Login prompts for credentials and stores the issued tokens.
func (a *App) Login(ctx context.Context) error {
	userName, err := a.ask("Enter username")
	if err != nil {
		return err
	}
	if userName == "" {
		return errEmptyUsername
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	a.loggedIn = true
	a.userName = user.Username
	if a.userName == "" {
		a.userName = userName
	}
	success(a.out, "Welcome, %s!", a.userName)
	return nil
}

// Logout revokes the session. The local session is gone even when the
// backend call fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.loggedIn = false
	a.userName = ""
	if err != nil {
		return err
	}
	success(a.out, "Logged out.")
	return nil
}

// WhoAmI shows what the stored access token says, without a network call.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.session.WhoAmI(ctx)
	if err != nil {
		return err
	}

	fields := []kv{
		{"username", id.Username},
		{"role", id.Role},
	}
	if id.UserID != 0 {
		fields = append(fields, kv{"user id", strconv.FormatInt(id.UserID, 10)})
	}
	if !id.ExpiresAt.IsZero() {
		exp := id.ExpiresAt.Local().Format(time.DateTime)
		if id.Expired(time.Now()) {
			exp += " (expired)"
		}
		fields = append(fields, kv{"expires", exp})
	}
	renderFields(a.out, fields)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	p, err := a.accounts.Me(ctx)
	if err != nil {
		return err
	}
	renderFields(a.out, []kv{
		{"id", strconv.FormatInt(p.ID, 10)},
		{"username", p.Username},
		{"nickname", p.Nickname},
		{"email", p.Email},
		{"phone", p.Phone},
		{"address", p.Address},
		{"role", p.Role},
		{"credit score", strconv.Itoa(p.CreditScore)},
		{"balance", p.Balance},
		{"trades", strconv.Itoa(p.TradeCount)},
		{"good rate", p.GoodRate},
	})
	return nil
}

// Users lists all accounts. The backend only allows this for admins.
func (a *App) Users(ctx context.Context) error {
	users, err := a.accounts.ListUsers(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10), u.Username, u.Nickname, u.Role,
			strconv.Itoa(u.CreditScore), fmt.Sprint(u.IsActive),
		})
	}
	renderTable(a.out, []string{"ID", "Username", "Nickname", "Role", "Credit", "Active"}, rows)
	return nil
}
