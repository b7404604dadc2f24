// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import "strings"

// Handler is the closed set of sink kinds that can be requested from
// configuration.
type Handler int

const (
	HandlerStdout Handler = iota
	HandlerStderr
	HandlerNoop
	HandlerFile
)

// handlerNames maps the configuration spelling of every handler.
var handlerNames = map[string]Handler{
	"stdout": HandlerStdout,
	"stderr": HandlerStderr,
	"noop":   HandlerNoop,
	"file":   HandlerFile,
}

func (h Handler) String() string {
	for name, handler := range handlerNames {
		if handler == h {
			return name
		}
	}

	return "unknown"
}

// ParseHandlers parses a comma-separated ordered list of handler names.
// Recognized handlers are returned in configuration order; names that match
// no handler are returned separately so that the caller can report them
// without failing.
func ParseHandlers(list string) ([]Handler, []string) {
	var handlers []Handler
	var unknown []string
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		handler, ok := handlerNames[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		handlers = append(handlers, handler)
	}

	return handlers, unknown
}
