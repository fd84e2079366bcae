// Package cli implements the polyglot command-line client.
//
// Each invocation runs one command against the REST API:
//
//	register             create an account (email and password are prompted)
//	login                start a session and store its token locally
//	logout               revoke the stored session and forget the token
//	translate F T TEXT   translate TEXT from F to T and save it to history
//	voice FILE F T       transcribe a recorded clip, translate it and save it
//	history [text|voice] list saved translations, newest first
//	prefs [F T]          show or update default languages
//
// The session token lives in a file readable only by the current user
// (see TokenStore). Passwords are read from the terminal without echo.
package cli
