package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and creates a new
// account. A successful registration signs the user in immediately.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Choose a password", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, username, email, password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	return nil
}

// Login prompts for credentials and signs the user in. The identifier can be
// either the username or the email address.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, identifier, password)
	if err != nil {
		a.report(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Username)
	return nil
}

// Logout signs the user out. Local state is cleared even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Profile shows the current profile and optionally updates it. Empty answers
// keep the current values.
func (a *App) Profile(ctx context.Context) error {
	user, ok := a.session.User()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", user.Username, user.Email)

	answer, err := getSimpleText(a.reader, "Update profile? (y/N)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("New username [%s]", user.Username), a.out)
	if err != nil {
		return err
	}
	if username == "" {
		username = user.Username
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("New email [%s]", user.Email), a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = user.Email
	}

	updated, err := a.auth.UpdateProfile(ctx, username, email)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", updated.Username, updated.Email)
	return nil
}

// ChangePassword prompts for the current and a new password.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ChangePassword(ctx, current, next); err != nil {
		a.report(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
