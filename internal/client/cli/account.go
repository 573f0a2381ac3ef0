package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	username, password, err := c.readCredentials(args, true)
	if err != nil {
		return err
	}

	session, err := c.auth.Register(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Printf("Registered and logged in as %s\n", session.Username)
	return nil
}

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	username, password, err := c.readCredentials(args, false)
	if err != nil {
		return err
	}

	session, err := c.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	c.io.Printf("Logged in as %s\n", session.Username)
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	if _, err := c.auth.Restore(ctx); err != nil {
		c.io.Println("Not logged in")
		return nil
	}
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}

	c.io.Println("Logged out")
	return nil
}

func (c *Cli) runWhoAmI(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	session, err := c.auth.Restore(ctx)
	if err != nil {
		c.io.Println("Not logged in")
		return nil
	}

	user, err := c.auth.WhoAmI(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("%s (%s) on %s\n", user.Username, user.ID, session.ServerURL)
	return nil
}

func (c *Cli) readCredentials(args []string, confirm bool) (string, string, error) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = c.io.ReadInput("Username: "); err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}

	if confirm {
		again, err := c.io.ReadPassword("Repeat password: ")
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		if again != password {
			return "", "", fmt.Errorf("passwords do not match")
		}
	}

	return username, password, nil
}
