// cmd/reversi/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jason-s-yu/reversi/internal/config"
	"github.com/jason-s-yu/reversi/internal/events"
	"github.com/jason-s-yu/reversi/internal/game"
	"github.com/jason-s-yu/reversi/internal/session"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("Invalid configuration: %v", err)
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithDialect(cfg.Dialect),
		session.WithThresholds(cfg.Health),
		session.WithZombieAutoClose(cfg.ZombieAutoClose),
		session.WithWriteTimeout(cfg.WriteTimeout),
	}
	if cfg.Redis.Enabled {
		pub, err := events.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Channel)
		if err != nil {
			logger.Warnf("Event mirror disabled: %v", err)
		} else {
			defer pub.Close()
			logger.Infof("Mirroring events to Redis channel %s", pub.Channel())
			opts = append(opts, session.WithPublisher(pub))
		}
	}

	pterm.DefaultHeader.WithFullWidth().Println("Reversi 4x4")
	name := askName()

	sh := newShell(logger)
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	spinner, _ := pterm.DefaultSpinner.Start("Connecting to " + cfg.Target() + " ...")
	sess, err := session.Dial(dialCtx, cfg.Transport, cfg.Target(), sh.callbacks(), opts...)
	cancel()
	if err != nil {
		spinner.Fail(err.Error())
		os.Exit(1)
	}
	spinner.Success("Connected")
	sh.sess.Store(sess)

	if err := sess.Login(name); err != nil {
		pterm.Error.Printfln("Login failed: %v", err)
		os.Exit(1)
	}

	err = sh.run(ctx, os.Stdin)
	if err != nil && !errors.Is(err, session.ErrClosed) {
		logger.WithField("session", sess.ID()).Errorf("Session ended: %v", err)
		os.Exit(1)
	}
	pterm.Info.Println("Bye")
}

// askName prompts until the name fits the server's field width.
func askName() string {
	for {
		name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").Show()
		name = strings.TrimSpace(name)
		pterm.Println()
		switch {
		case name == "":
			pterm.Warning.Println("Name cannot be empty")
		case len(name) > game.MaxNameLength:
			pterm.Warning.Printfln("Name is too long (max %d characters)", game.MaxNameLength)
		case strings.Contains(name, ";"):
			pterm.Warning.Println("Name cannot contain ';'")
		default:
			return name
		}
	}
}
