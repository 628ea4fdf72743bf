package api

import (
	"context"

	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/session"
)

type keyType string

const sessionKey keyType = "session"

// ctxWithSession adds the caller's session to the context
func ctxWithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// ctxGetSession retrieves the session set by the auth middleware
func ctxGetSession(ctx context.Context) (session.Session, error) {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	if !ok {
		return session.Session{}, errs.NewMissingTokenError()
	}
	return sess, nil
}
