package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/homeledger/internal/client/client"
	"github.com/dmitrijs2005/homeledger/internal/common"
)

func (a *App) Register(ctx context.Context) {
	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.auth.Register(ctx, userName, string(password)); err != nil {
		switch {
		case errors.Is(err, client.ErrUnavailable):
			log.Println("Registration requires a connection to the server")
		case errors.Is(err, common.ErrorUsernameTaken):
			log.Println("Username is already taken")
		default:
			log.Printf("Registration unsuccessful: %s", err.Error())
		}
		return
	}
	printlnFn("Registered, you can log in now")
}

func (a *App) Login(ctx context.Context) {
	userName, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.auth.Login(ctx, userName, string(password)); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Println("Server unavailable, continuing with local data")
			a.session.SetUsername(userName)
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
			return
		}
	}
	a.setLoggedIn(true)

	a.monitor.CheckNow(ctx)
	if err := a.ledger.LoadInitial(ctx); err != nil {
		log.Printf("Failed to load ledger: %s", err.Error())
	}
	if a.monitor.IsOnline() {
		a.replayer.Wake()
		a.startFeed(ctx)
	}
	printlnFn("Logged in")
}
