package config

import (
	"time"

	"github.com/go-webauthn/webauthn/webauthn"
)

func InitWebAuthn() *webauthn.WebAuthn {
	timeout := time.Duration(Conf.Application.WebAuthn.ChallengeTimeoutInMins) * time.Minute
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName: Conf.Application.WebAuthn.RpDisplayName,
		RPID:          Conf.Application.WebAuthn.RpID,
		RPOrigins:     []string{Conf.Application.WebAuthn.RpOrigin},
		Timeouts: webauthn.TimeoutsConfig{
			Login: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    timeout,
				TimeoutUVD: timeout,
			},
			Registration: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    timeout,
				TimeoutUVD: timeout,
			},
		},
	})

	if err != nil {
		panic(err)
	}
	return wa
}
