package controltower

import (
	"context"
	"errors"
	"strings"
)

// Login exchanges a username-or-email plus password for a bearer
// credential and the identity it was issued for, then commits both to
// memory and durable storage as one atomic record.
//
// A rejected login (wrong password, unknown account, deactivated account)
// returns an error matching [ErrInvalidCredentials] whose message carries
// the backend's own wording verbatim. An unreachable backend returns an
// error matching [ErrBackendUnavailable]. Neither outcome commits anything.
func (g *Guard) Login(ctx context.Context, usernameOrEmail, password string) (Identity, error) {
	if g == nil || g.client == nil {
		return Identity{}, ErrGuardNotReady
	}

	usernameOrEmail = strings.TrimSpace(usernameOrEmail)

	resp, err := g.client.login(ctx, LoginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			g.metricInc(MetricLoginFailure)
			g.audit.emit(ctx, AuditEventLoginFailed, usernameOrEmail, "", false, err.Error())
			g.log.Info().Str("username", usernameOrEmail).Err(err).Msg("login rejected")

		case errors.Is(err, ErrBackendUnavailable):
			g.metricInc(MetricLoginUnreachable)
			g.log.Warn().Err(err).Msg("login could not reach backend")

		default:
			g.metricInc(MetricLoginFailure)
			g.audit.emit(ctx, AuditEventLoginFailed, usernameOrEmail, "", false, err.Error())
		}
		return Identity{}, err
	}

	if resp.AccessToken == "" || resp.User.Username == "" {
		g.metricInc(MetricLoginFailure)
		return Identity{}, errors.Join(ErrBackendUnavailable, errors.New("login response missing token or identity"))
	}

	if err := g.commit(ctx, resp.User, resp.AccessToken); err != nil {
		g.log.Error().Err(err).Msg("persisting session after login failed")
		return Identity{}, err
	}

	g.metricInc(MetricLoginSuccess)
	g.audit.emit(ctx, AuditEventLogin, resp.User.Username, resp.User.RoleCode, true, "")
	g.log.Info().
		Str("username", resp.User.Username).
		Str("role", resp.User.RoleCode).
		Msg("login committed")

	return resp.User, nil
}
