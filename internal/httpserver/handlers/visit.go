package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/content"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/navigation"
	"github.com/MrSnakeDoc/javadocs/internal/session"
)

const sessionIOTimeout = 2 * time.Second

// visit is one visitor's private Repository and Navigation State, restored
// from the session store.
type visit struct {
	state  *session.State
	repo   *content.Repository
	nav    *navigation.State
	scroll *navigation.ScrollRecorder
}

// openVisit loads the session id and replays it into a fresh Repository.
// Store failures fall back to a default session.
func openVisit(ctx context.Context, d deps.Deps, id string) *visit {
	st := loadSession(ctx, d, id)

	repo := d.Index.NewRepository()
	scroll := &navigation.ScrollRecorder{}
	nav := navigation.New(repo, scroll)
	session.Restore(st, repo, nav)

	return &visit{state: st, repo: repo, nav: nav, scroll: scroll}
}

func loadSession(ctx context.Context, d deps.Deps, id string) *session.State {
	if id == "" || d.Sessions == nil {
		return session.NewState(id)
	}

	ctx, cancel := context.WithTimeout(ctx, sessionIOTimeout)
	defer cancel()

	st, err := d.Sessions.Get(ctx, id)
	switch {
	case err == nil:
		return st
	case errors.Is(err, session.ErrNotFound):
		return session.NewState(id)
	default:
		d.Logger.Warn("session load failed, using a fresh session",
			logger.String("session_id", id), logger.Error(err))
		return session.NewState(id)
	}
}

// save captures the navigation state into the session and stores it.
// Failures are logged and otherwise ignored.
func (v *visit) save(ctx context.Context, d deps.Deps) {
	session.Capture(v.state, v.repo, v.nav)
	if v.state.ID == "" || d.Sessions == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sessionIOTimeout)
	defer cancel()

	if err := d.Sessions.Save(ctx, v.state); err != nil {
		d.Logger.Warn("session save failed",
			logger.String("session_id", v.state.ID), logger.Error(err))
	}
}
