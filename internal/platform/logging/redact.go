package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// sensitiveKeys never reach a sink. The catalog itself holds nothing secret;
// these cover forwarded request headers and the upstream client settings.
var sensitiveKeys = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"api_key",
	"apiKey",
	"password",
	"token",
	"access_token",
	"refresh_token",
	"credentials",
}

var (
	jwtValue        = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	authSchemeValue = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)
	// Matches URLs with embedded user info such as a misconfigured base_url.
	userinfoURL = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://[^/@\s]+:[^/@\s]*@`)
)

// RedactOptions returns the masq options every handler is built with.
func RedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(sensitiveKeys)+4)
	for _, key := range sensitiveKeys {
		opts = append(opts, masq.WithFieldName(key))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(jwtValue),
		masq.WithRegex(authSchemeValue),
		masq.WithRegex(userinfoURL),
	)
}

func replaceAttr(extra ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(RedactOptions(), extra...)...)
}
