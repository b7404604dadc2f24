// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package termlog

import (
	"strconv"
	"strings"
)

// TimestampLayout is the fixed layout used to render record timestamps.
const TimestampLayout = "2006-01-02T15:04:05-0700"

// sanitizer collapses multi-line exception text on a single physical line and
// strips the quote characters that would break line-oriented log parsers.
var sanitizer = strings.NewReplacer(
	"\n", " - ",
	"\t", " ",
	"\r", "",
	"'", "`",
	`"`, "`",
)

// Context carries the values stamped on every log line. It is built once at
// startup and shared by every formatter of the process.
type Context struct {
	Identity  string
	SessionID string
	Version   string
}

// Formatter renders records as single line, pipe-delimited strings with a
// fixed prefix of level character, version, identity, and session id.
type Formatter struct {
	context Context
}

// NewFormatter returns a Formatter bound to the given context values.
func NewFormatter(context Context) *Formatter {
	return &Formatter{context: context}
}

// Format renders the record. Records carrying exception text always use the
// "X" level character and have the exception appended to the body before
// newlines, tabs, and quotes are normalized away.
func (f *Formatter) Format(record Record) string {
	levelChar := "U"
	if name := record.Level.Name(); name != "" {
		levelChar = name[:1]
	}

	body := strings.Join([]string{
		record.Time.Format(TimestampLayout),
		record.Name,
		record.FuncName,
		strconv.Itoa(record.Line),
		record.Message,
	}, "|")

	if record.Exception != "" {
		levelChar = "X"
		body = sanitizer.Replace(body + "\n" + record.Exception)
	}

	prefix := strings.Join([]string{
		levelChar,
		f.context.Version,
		f.context.Identity,
		f.context.SessionID,
	}, "|")

	return prefix + "|" + body
}
