// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// loginCommand runs the one-shot authorization flow.
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authorize with Spotify using OAuth2 + PKCE",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print the token JSON",
				Value: true,
			},
		},
		Action: r.Login,
	}
}

// serveCommand runs the long-lived loopback listener for the widget.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the loopback callback listener and emit token events",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "login",
				Usage: "Start a login immediately after the listener binds",
			},
		},
		Action: r.Serve,
	}
}

// refreshCommand exchanges a refresh token from the command line.
func refreshCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Exchange a refresh token for a new access token",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "token"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print the token JSON",
				Value: true,
			},
		},
		Action: r.Refresh,
	}
}

// setupCommand writes the example configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Write an example config.toml to get started",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}
